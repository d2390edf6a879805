// Package httpd serves the device command protocol over TCP.
package httpd

// The protocol is a deliberately small subset of HTTP/1.1 so that any
// HTTP client can talk to the device: one request per connection, only
// the request line is examined, and every response carries an explicit
// Content-Length and Connection: close.
//
// The server handles one connection at a time. A fixed deadline covers
// the whole read/write exchange; a connection that stalls is dropped
// and the accept loop resumes. Routing publishes at most one angle
// command per request and never touches any other device state.
