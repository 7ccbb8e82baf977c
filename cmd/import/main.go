package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joho/godotenv"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
	"jianstory-server/internal/infra/supabase"
	"jianstory-server/internal/repository"
	"jianstory-server/pkg/format"
	"jianstory-server/pkg/logger"
)

// storyInfo is the story_info.json metadata file inside a story directory.
type storyInfo struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Status      string `json:"status"`
	SourceURL   string `json:"source_url"`
}

// chapterFile is one entry of the chapters.json array.
type chapterFile struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func main() {
	dir := flag.String("dir", "./stories", "directory of story folders to import")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	client := supabase.NewClient(config.ServiceRole(cfg), appLogger)
	if err := client.Initialize(); err != nil {
		appLogger.Error("Supabase is required for imports", err)
		os.Exit(1)
	}

	var cld *cloudinary.Cloudinary
	if os.Getenv("CLOUDINARY_URL") != "" {
		var err error
		cld, err = cloudinary.New()
		if err != nil {
			appLogger.Error("Failed to initialize Cloudinary", err)
			os.Exit(1)
		}
	} else {
		appLogger.Warn("CLOUDINARY_URL not set, covers will not be uploaded")
	}

	storyRepo := repository.NewSupabaseStoryRepository(client, appLogger)
	chapterRepo := repository.NewSupabaseChapterRepository(client, appLogger)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		appLogger.Error("Failed to read import directory", err, "dir", *dir)
		os.Exit(1)
	}

	imported := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		storyDir := filepath.Join(*dir, entry.Name())
		if err := importStory(storyDir, cld, storyRepo, chapterRepo, appLogger); err != nil {
			appLogger.Error("Failed to import story", err, "dir", storyDir)
			continue
		}
		imported++
	}

	appLogger.Info("Import finished", "imported", imported, "scanned", len(entries))
}

func importStory(dir string, cld *cloudinary.Cloudinary, storyRepo domain.StoryRepository, chapterRepo domain.ChapterRepository, appLogger domain.Logger) error {
	info, err := readStoryInfo(filepath.Join(dir, "story_info.json"))
	if err != nil {
		return err
	}
	chapters, err := readChapters(filepath.Join(dir, "chapters.json"))
	if err != nil {
		return err
	}

	slug := format.Slugify(info.Title)
	if slug == "" {
		return fmt.Errorf("story title %q produces an empty slug", info.Title)
	}

	story := &domain.Story{
		Title:       info.Title,
		Slug:        slug,
		Author:      info.Author,
		Description: info.Description,
		Status:      storyStatus(info.Status),
		SourceURL:   info.SourceURL,
	}

	if cld != nil {
		publicID, err := uploadCover(cld, filepath.Join(dir, "cover.jpg"), slug)
		if err != nil {
			appLogger.Warn("Cover upload failed, importing without one", "story", slug, "error", err)
		} else {
			story.CloudinaryPublicID = publicID
		}
	}

	saved, err := storyRepo.Upsert(story)
	if err != nil {
		return err
	}

	for _, ch := range chapters {
		chapterSlug := format.Slugify(ch.Title)
		if chapterSlug == "" {
			chapterSlug = fmt.Sprintf("chapter-%d", ch.Number)
		}
		err := chapterRepo.Upsert(&domain.Chapter{
			StoryID:       saved.ID,
			ChapterNumber: ch.Number,
			Title:         ch.Title,
			Slug:          chapterSlug,
			Content:       ch.Content,
			WordCount:     len(strings.Fields(ch.Content)),
		})
		if err != nil {
			return fmt.Errorf("chapter %d: %w", ch.Number, err)
		}
	}

	total, err := chapterRepo.CountByStory(saved.ID)
	if err != nil {
		return err
	}
	saved.TotalChapters = total
	if _, err := storyRepo.Upsert(saved); err != nil {
		return err
	}

	appLogger.Info("Imported story", "slug", slug, "chapters", total)
	return nil
}

func readStoryInfo(path string) (*storyInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info storyInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if info.Title == "" {
		return nil, fmt.Errorf("%s has no title", path)
	}
	return &info, nil
}

func readChapters(path string) ([]chapterFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chapters []chapterFile
	if err := json.Unmarshal(raw, &chapters); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return chapters, nil
}

func storyStatus(s string) domain.StoryStatus {
	switch domain.StoryStatus(s) {
	case domain.StoryStatusCompleted:
		return domain.StoryStatusCompleted
	case domain.StoryStatusHiatus:
		return domain.StoryStatusHiatus
	default:
		return domain.StoryStatusOngoing
	}
}

func uploadCover(cld *cloudinary.Cloudinary, path, slug string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	resp, err := cld.Upload.Upload(context.Background(), path, uploader.UploadParams{
		PublicID:  "covers/" + slug,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", err
	}
	return resp.PublicID, nil
}
