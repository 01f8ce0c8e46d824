// Package redis is a pipelining Redis client built around strict FIFO
// reply correlation on a single connection.
//
// Commands never block the caller: Send returns a Call immediately, and the
// reply is claimed with Call.Result. Commands issued before the connection
// exists are buffered and flushed, in order, once the connection and its
// AUTH/SELECT handshake complete. Pub/sub notifications and monitor output
// arrive on the same connection and are delivered out-of-band to OnEvent
// observers.
//
// Basic usage:
//
//	client := redis.NewClient(nil) // resolves REDIS_URL, falls back to localhost
//	defer client.Close()
//
//	client.Set("greeting", "hello")
//	reply, err := client.Get("greeting").Result(ctx)
//
// Pub/sub:
//
//	client.OnEvent(func(ev redis.Event) {
//	    if ev.Kind == redis.EventMessage {
//	        fmt.Printf("%s: %s\n", ev.Channel, ev.Payload)
//	    }
//	})
//	client.Subscribe("news")
//
// The wire codec lives in the resp subpackage.
package redis
