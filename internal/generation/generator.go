// Package generation abstracts the image synthesis backend. The real model
// service is not wired yet; Placeholder stands in for it and returns static
// stock URLs.
package generation

// Generator produces n image URLs for a prompt/model pair.
type Generator interface {
	Generate(prompt, model string, n int) ([]string, error)
}

type Placeholder struct{}

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (p *Placeholder) Generate(prompt, model string, n int) ([]string, error) {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = "https://picsum.photos/512/512"
	}
	return urls, nil
}
