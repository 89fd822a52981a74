package pipeline

// HandlerContext identifies a handler's position within one specific
// pipeline. The pipeline owns all of its contexts; a context only keeps a
// non-owning back-reference to the pipeline that created it and is not valid
// for any other pipeline instance.
type HandlerContext struct {
	pipe    *Pipeline
	name    string
	handler Handler
}

// Name returns the name the handler was registered under.
func (c *HandlerContext) Name() string {
	return c.name
}

// Handler returns the handler instance held at this position.
func (c *HandlerContext) Handler() Handler {
	return c.handler
}

// Pipeline returns the pipeline that owns this context.
func (c *HandlerContext) Pipeline() *Pipeline {
	return c.pipe
}
