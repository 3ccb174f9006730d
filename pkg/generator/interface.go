package generator

// Renderer produces the encoder input for one output file.
type Renderer interface {
	Render() (Config, error)
}

// RendererFunc adapts an ordinary function to Renderer.
type RendererFunc func() (Config, error)

// Render calls f.
func (f RendererFunc) Render() (Config, error) { return f() }
