package database

import (
	"github.com/pixmora/pixmora-backend/internal/models"
	"github.com/pixmora/pixmora-backend/pkg/bcrypt"
	"github.com/pixmora/pixmora-backend/pkg/utils"
	"gorm.io/gorm"
)

type seedPrompt struct {
	Title           string
	Content         string
	PreviewImageURL string
	Reward          int
}

var seedUsers = []models.User{
	{Username: "PixelDreamer", Email: "pixel@dream.com"},
	{Username: "AI_Artisan", Email: "ai@artisan.com"},
	{Username: "SynthWave", Email: "synth@wave.com"},
	{Username: "GlitchMaster", Email: "glitch@master.com"},
}

var seedPrompts = []seedPrompt{
	{
		Title:           "Epic cinematic shot of a majestic lion in a futuristic city, neon lights, detailed fur, 8k",
		Content:         "A majestic lion stands proudly amidst a sprawling futuristic cityscape. Towering skyscrapers with holographic advertisements pierce the clouds, while flying vehicles zip between them. The lion's fur is rendered in exquisite detail, catching the glow of the vibrant neon lights that bathe the scene in a cyberpunk aesthetic. The image is captured in a cinematic 8k resolution, emphasizing the grandeur and scale of the moment.",
		PreviewImageURL: "https://picsum.photos/seed/101/400/600",
		Reward:          5,
	},
	{
		Title:           "A tranquil scene of a cherry blossom tree by a serene lake, digital painting, Studio Ghibli style",
		Content:         "In the style of a Studio Ghibli digital painting, a magnificent cherry blossom tree in full bloom stands by the edge of a crystal-clear, serene lake. The gentle breeze scatters petals across the water's surface, creating soft ripples. The color palette is soft and dreamlike, with pastel pinks, blues, and greens dominating the scene, evoking a sense of peace and tranquility.",
		PreviewImageURL: "https://picsum.photos/seed/102/400/500",
		Reward:          3,
	},
	{
		Title:           "Hyperrealistic portrait of an old wizard with a long white beard, intricate details, fantasy art",
		Content:         "A hyperrealistic fantasy art portrait of a wise and ancient wizard. Every wrinkle on his face tells a story, and his long, flowing white beard is rendered with incredible detail. His eyes, full of wisdom and a hint of magic, seem to look directly at the viewer. He wears ornate robes adorned with mystical symbols, and a faint magical aura surrounds him.",
		PreviewImageURL: "https://picsum.photos/seed/103/400/700",
		Reward:          8,
	},
	{
		Title:           "An astronaut floating in space, looking at a galaxy nebula, vibrant colors, cosmic art",
		Content:         "A lone astronaut floats weightlessly in the vast expanse of space, dwarfed by the breathtaking beauty of a colorful galaxy nebula. Swirls of vibrant pink, purple, and blue gases create a cosmic masterpiece, with distant stars twinkling like diamonds. The astronaut's helmet reflects the nebula, creating a powerful and awe-inspiring image of humanity's place in the universe.",
		PreviewImageURL: "https://picsum.photos/seed/104/400/550",
		Reward:          10,
	},
	{
		Title:           "Surreal landscape with floating islands and giant mushrooms, psychedelic art, detailed",
		Content:         "A surreal and psychedelic landscape where giant, glowing mushrooms illuminate a world of floating islands. The sky is a kaleidoscope of colors, and strange, exotic plants grow on the islands. The artwork is highly detailed, inviting the viewer to get lost in its fantastical and dreamlike world. The overall effect is one of wonder and otherworldliness.",
		PreviewImageURL: "https://picsum.photos/seed/105/400/650",
		Reward:          7,
	},
}

var seedPackages = []models.CreditPackage{
	{Name: "100 Credits", Description: "100 image generations", Credits: 100, Price: 9.99, IsActive: true},
	{Name: "300 Credits", Description: "300 image generations", Credits: 300, Price: 24.99, IsActive: true},
	{Name: "1000 Credits", Description: "1000 image generations, priority queue", Credits: 1000, Price: 69.99, IsActive: true},
}

// Seed inserts the curated gallery accounts, the five curated prompts shown on
// the first feed page and the purchasable credit packages. Rows already
// present are left untouched, so Seed is safe to run on every boot.
func Seed(db *gorm.DB) error {
	users := make([]models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		var user models.User
		err := db.Where("email = ?", su.Email).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			hash, hashErr := bcrypt.HashPassword(utils.GenerateRandomString(24))
			if hashErr != nil {
				return hashErr
			}
			user = models.User{Username: su.Username, Email: su.Email, PasswordHash: hash}
			err = db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
				return tx.Create(&models.CreditAccount{UserID: user.ID, Balance: 0}).Error
			})
		}
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	for i, sp := range seedPrompts {
		var count int64
		if err := db.Model(&models.Prompt{}).Where("title = ?", sp.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		owner := users[i%len(users)]
		prompt := models.Prompt{
			OwnerID:         owner.ID,
			Title:           sp.Title,
			Content:         sp.Content,
			PreviewImageURL: sp.PreviewImageURL,
			IsPublic:        true,
			Status:          models.PromptStatusApproved,
			Reward:          sp.Reward,
		}
		if err := db.Create(&prompt).Error; err != nil {
			return err
		}
	}

	for _, pkg := range seedPackages {
		var count int64
		if err := db.Model(&models.CreditPackage{}).Where("name = ?", pkg.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			pkg := pkg
			if err := db.Create(&pkg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
