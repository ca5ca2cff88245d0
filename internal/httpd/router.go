package httpd

import "strings"

// HandlerFunc handles one fully parsed request. Handlers must write exactly
// one response.
type HandlerFunc func(req *Request, res *Response)

type route struct {
	method  string // empty for prefix routes
	path    string
	prefix  bool
	handler HandlerFunc
}

// Router maps (method, path) to a handler with ordered exact-match and
// prefix-match rules. Routing is stateless; the table is fixed after setup.
type Router struct {
	routes []route
}

func NewRouter() *Router {
	return &Router{}
}

// Handle registers an exact (method, path) route. A request hitting the path
// with a different method receives 405.
func (r *Router) Handle(method, path string, h HandlerFunc) {
	r.routes = append(r.routes, route{method: method, path: path, handler: h})
}

// HandlePrefix registers a path-prefix route matched regardless of method;
// the handler performs its own method check.
func (r *Router) HandlePrefix(prefix string, h HandlerFunc) {
	r.routes = append(r.routes, route{path: prefix, prefix: true, handler: h})
}

// Dispatch selects exactly one handler. No path match yields 404; an exact
// path matched only under other methods yields 405.
func (r *Router) Dispatch(req *Request, res *Response) {
	pathMatched := false

	for _, rt := range r.routes {
		if rt.prefix {
			if strings.HasPrefix(req.Path, rt.path) {
				rt.handler(req, res)
				return
			}
			continue
		}
		if rt.path != req.Path {
			continue
		}
		if rt.method == req.Method {
			rt.handler(req, res)
			return
		}
		pathMatched = true
	}

	if pathMatched {
		res.WriteError(405, "method_not_allowed") //nolint:errcheck // connection closes regardless
		return
	}
	res.WriteError(404, "not_found") //nolint:errcheck // connection closes regardless
}
