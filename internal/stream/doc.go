// Package stream implements the stateful synchronization engine over a
// single exchange websocket connection.
//
// A Client multiplexes every subscribed channel over one connection and
// mirrors the inbound stream into in-memory stores: incremental order
// books with checksum verification, bounded trade and fill buffers, and
// last-value ticker and order caches. Subscriptions are implicit: the
// first read of a market's data subscribes the backing channel, and
// repeated reads reuse it.
//
// A single dispatch goroutine applies all mutations, so readers always
// observe a book that corresponds to some exact message boundary. On a
// transport failure or a server reconnect request the Client redials
// with bounded exponential backoff and wipes all mirrored state, since
// nothing received on the old connection remains trustworthy. Server
// error frames are fatal and stop the Client.
package stream
