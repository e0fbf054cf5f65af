package models

// Card dimensions served to the gallery grid.
const (
	CardWidth  = 400
	CardHeight = 600
)

type CardAuthor struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type CardPrompt struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Author  CardAuthor `json:"author"`
	Reward  int        `json:"reward"`
}

// ImageCard is one entry in the gallery feed. Curated prompts and shared
// generated images are both flattened into this shape.
type ImageCard struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Prompt CardPrompt `json:"prompt"`
}

// PromptCard builds a feed card from a curated prompt.
func PromptCard(p *Prompt) ImageCard {
	return ImageCard{
		ID:     p.ID.String(),
		URL:    p.PreviewImageURL,
		Width:  CardWidth,
		Height: CardHeight,
		Prompt: CardPrompt{
			ID:      p.ID.String(),
			Title:   p.Title,
			Content: p.Content,
			Author: CardAuthor{
				ID:        p.Owner.ID.String(),
				Username:  p.Owner.Username,
				AvatarURL: p.Owner.AvatarURL,
			},
			Reward: p.Reward,
		},
	}
}

// SharedImageCard builds a feed card from a shared generated image. The image
// inherits its session's prompt text; shared images carry no reward.
func SharedImageCard(img *GeneratedImage) ImageCard {
	card := ImageCard{
		ID:     img.ID.String(),
		URL:    img.URL,
		Width:  CardWidth,
		Height: CardHeight,
		Prompt: CardPrompt{
			ID:      img.SessionID.String(),
			Title:   img.Session.Prompt,
			Content: img.Session.Prompt,
		},
	}
	if img.Session.User != nil {
		card.Prompt.Author = CardAuthor{
			ID:        img.Session.User.ID.String(),
			Username:  img.Session.User.Username,
			AvatarURL: img.Session.User.AvatarURL,
		}
	}
	return card
}
