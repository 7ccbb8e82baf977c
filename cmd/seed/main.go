package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
	"jianstory-server/internal/infra/supabase"
	"jianstory-server/internal/repository"
	"jianstory-server/pkg/format"
	"jianstory-server/pkg/logger"
)

// Minimal sample dataset for local development.
var sampleStories = []struct {
	title       string
	author      string
	description string
	status      domain.StoryStatus
	chapters    []string
}{
	{
		title:       "The Lantern Road",
		author:      "Wei Ran",
		description: "A courier crosses a country that only exists at night.",
		status:      domain.StoryStatusOngoing,
		chapters: []string{
			"The first lantern lit itself the moment Shen stepped onto the road.",
			"By the second night the road had learned her name.",
			"Nothing on the road stays lost, the old courier had warned her.",
		},
	},
	{
		title:       "Salt and Circuitry",
		author:      "M. Okafor",
		description: "A tide-powered city hires its first land-born engineer.",
		status:      domain.StoryStatusCompleted,
		chapters: []string{
			"The interview took place forty meters below the harbor.",
			"Her first repair order was for a machine nobody would describe.",
		},
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	client := supabase.NewClient(config.ServiceRole(cfg), appLogger)
	if err := client.Initialize(); err != nil {
		appLogger.Error("Supabase is required for seeding", err)
		os.Exit(1)
	}

	storyRepo := repository.NewSupabaseStoryRepository(client, appLogger)
	chapterRepo := repository.NewSupabaseChapterRepository(client, appLogger)

	for _, sample := range sampleStories {
		story, err := storyRepo.Upsert(&domain.Story{
			Title:         sample.title,
			Slug:          format.Slugify(sample.title),
			Author:        sample.author,
			Description:   sample.description,
			Status:        sample.status,
			TotalChapters: len(sample.chapters),
		})
		if err != nil {
			appLogger.Error("Failed to seed story", err, "title", sample.title)
			os.Exit(1)
		}

		for i, content := range sample.chapters {
			title := fmt.Sprintf("Chapter %d", i+1)
			err := chapterRepo.Upsert(&domain.Chapter{
				StoryID:       story.ID,
				ChapterNumber: i + 1,
				Title:         title,
				Slug:          format.Slugify(title),
				Content:       content,
				WordCount:     len(strings.Fields(content)),
			})
			if err != nil {
				appLogger.Error("Failed to seed chapter", err, "story", story.Slug, "chapter", i+1)
				os.Exit(1)
			}
		}

		appLogger.Info("Seeded story", "slug", story.Slug, "chapters", len(sample.chapters))
	}
}
