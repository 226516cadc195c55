// Package event provides a synchronous topic-based event bus.
//
// Components subscribe to a topic and receive every published event
// for it until they unsubscribe. Delivery is synchronous and in
// subscription order: Publish returns only after all handlers ran.
// The bus exists so that cross-component notifications (document
// closed, project changed) use explicit subscribe/unsubscribe
// lifecycles instead of ad-hoc callback fields.
package event
