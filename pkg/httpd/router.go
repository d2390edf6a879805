package httpd

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/servo"
)

// Publisher receives the angle extracted from a servo request.
// It is satisfied by *command.Slot.
type Publisher interface {
	Put(servo.Angle)
}

// Response is one wire response waiting to be serialized.
type Response struct {
	Status      string
	ContentType string
	Body        string
}

// Bytes serializes the response. Every code path goes through this one
// builder so the wire format is uniform.
func (r Response) Bytes() []byte {
	var b strings.Builder
	b.Grow(len(r.Body) + 128)
	b.WriteString("HTTP/1.1 ")
	b.WriteString(r.Status)
	b.WriteString("\r\nContent-Type: ")
	b.WriteString(r.ContentType)
	b.WriteString("\r\nContent-Length: ")
	b.WriteString(strconv.Itoa(len(r.Body)))
	b.WriteString("\r\nConnection: close\r\n\r\n")
	b.WriteString(r.Body)
	return []byte(b.String())
}

const (
	statusOK               = "200 OK"
	statusBadRequest       = "400 Bad Request"
	statusNotFound         = "404 Not Found"
	statusMethodNotAllowed = "405 Method Not Allowed"
)

const (
	bodyHealth     = `{"healthy": true}`
	bodyAngleRange = `{"error": "Angle must be between 0 and 180"}`
	bodyAngleUsage = `{"error": "Missing or invalid angle parameter. Use /servo/90 or /servo?angle=90"}`
	bodyNotFound   = `{"error": "Not Found"}`
	bodyNotAllowed = `{"error": "Method Not Allowed"}`
)

func jsonResponse(status, body string) Response {
	return Response{Status: status, ContentType: "application/json", Body: body}
}

// Info names the device in the root descriptor.
type Info struct {
	Device  string
	Session string
}

// Router converts one request's text into exactly one response,
// publishing the commanded angle as its only side effect.
type Router struct {
	Publisher Publisher

	descriptor string
}

type descriptor struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Device    string   `json:"device,omitempty"`
	Session   string   `json:"session,omitempty"`
	Endpoints []string `json:"endpoints"`
}

// NewRouter creates a Router. The descriptor served on "/" is built
// once up front.
func NewRouter(pub Publisher, info Info) *Router {
	doc, err := json.Marshal(&descriptor{
		Status:  "ok",
		Message: "Servo Link Controller",
		Device:  info.Device,
		Session: info.Session,
		Endpoints: []string{
			"/servo/<angle>",
			"/servo?angle=<0-180>",
			"/health",
		},
	})
	if err != nil {
		panic(err)
	}
	return &Router{Publisher: pub, descriptor: string(doc)}
}

// Request is the examined part of one inbound request.
type Request struct {
	Method string
	Path   string
}

// ParseRequestLine extracts method and path from the first line of a
// request. Headers and body are never examined.
func ParseRequestLine(text string) (Request, bool) {
	line := text
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Request{}, false
	}
	return Request{Method: fields[0], Path: fields[1]}, true
}

// Route produces the response for one request.
func (r *Router) Route(text string) Response {
	req, ok := ParseRequestLine(text)
	if !ok {
		return Response{Status: statusBadRequest, ContentType: "text/plain", Body: "Bad Request"}
	}
	glog.V(2).Infof("HTTP %s %s", req.Method, req.Path)
	if req.Method != "GET" {
		return jsonResponse(statusMethodNotAllowed, bodyNotAllowed)
	}
	switch {
	case req.Path == "/":
		return jsonResponse(statusOK, r.descriptor)
	case req.Path == "/health":
		return jsonResponse(statusOK, bodyHealth)
	case strings.HasPrefix(req.Path, "/servo"):
		return r.servo(req.Path)
	}
	return jsonResponse(statusNotFound, bodyNotFound)
}

func (r *Router) servo(path string) Response {
	arg, ok := angleArg(path)
	if !ok {
		return jsonResponse(statusBadRequest, bodyAngleUsage)
	}
	a, err := servo.ParseAngle(arg)
	switch err {
	case nil:
		r.Publisher.Put(a)
		return jsonResponse(statusOK, `{"angle": `+strconv.Itoa(int(a))+`}`)
	case servo.ErrAngleRange:
		return jsonResponse(statusBadRequest, bodyAngleRange)
	}
	return jsonResponse(statusBadRequest, bodyAngleUsage)
}

// angleArg extracts the raw angle argument from a path segment after
// "/servo/" or an "angle" query parameter.
func angleArg(path string) (string, bool) {
	if strings.HasPrefix(path, "/servo/") {
		return path[len("/servo/"):], true
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		for _, pair := range strings.Split(path[i+1:], "&") {
			if strings.HasPrefix(pair, "angle=") {
				return pair[len("angle="):], true
			}
		}
	}
	return "", false
}
