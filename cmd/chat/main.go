package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/transcript-chat/internal/captions"
	"github.com/nguyentantai21042004/transcript-chat/internal/config"
	"github.com/nguyentantai21042004/transcript-chat/internal/export"
	"github.com/nguyentantai21042004/transcript-chat/internal/generator"
	"github.com/nguyentantai21042004/transcript-chat/internal/logger"
	"github.com/nguyentantai21042004/transcript-chat/internal/session"
	"github.com/nguyentantai21042004/transcript-chat/internal/watcher"
	"github.com/nguyentantai21042004/transcript-chat/pkg/embedder"
	"github.com/nguyentantai21042004/transcript-chat/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Chat")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Embedding model: %s", cfg.OpenAI.EmbeddingModel)
	log.Info(ctx, "Generation model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Chunk size: %d chars, top_k: %d, window: %d",
		cfg.Retrieval.ChunkSize, cfg.Retrieval.TopK, cfg.Retrieval.Window)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	emb, err := embedder.NewOpenAIEmbedder(cfg.OpenAI.EmbeddingModel)
	if err != nil {
		log.Error(ctx, "Failed to initialize embedder: %v", err)
		os.Exit(1)
	}

	geminiKeys := loadGeminiKeys()
	if len(geminiKeys) == 0 {
		log.Error(ctx, "GEMINI_API_KEY (or GEMINI_API_KEYS) environment variable not set")
		os.Exit(1)
	}

	exec := executor.New()
	source := captions.NewYouTubeSource(exec, log, cfg.Paths.Temp)
	sess := session.New(cfg, emb, log)
	gen := generator.New(geminiKeys, cfg.Gemini.Model, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Watch the captions drop directory for subtitle files
	w, err := watcher.New(cfg.Paths.Captions, srtLoadHandler(sess, log), log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create caption watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Chat is ready!")
	log.Info(ctx, "Caption drop directory: %s", cfg.Paths.Captions)
	log.Info(ctx, "")
	log.Info(ctx, "Commands:")
	log.Info(ctx, "  /load <youtube-url>   load a video's transcript")
	log.Info(ctx, "  /save                 export transcript and last answer to %s", cfg.Paths.Output)
	log.Info(ctx, "  /quit                 exit")
	log.Info(ctx, "  anything else         ask a question about the loaded transcript")
	log.Info(ctx, "========================================")

	// Run the chat loop
	done := make(chan struct{})
	go func() {
		defer close(done)
		runChatLoop(ctx, cfg, sess, source, gen, log)
	}()

	// Wait for shutdown signal, watcher error or end of input
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	case <-done:
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Transcript Chat stopped")
}

// runChatLoop reads commands and questions from stdin until EOF
func runChatLoop(ctx context.Context, cfg *config.Config, sess session.Session, source captions.Source, gen generator.Generator, log logger.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	var lastQuestion, lastAnswer string

	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":

		case line == "/quit":
			return

		case strings.HasPrefix(line, "/load "):
			url := strings.TrimSpace(strings.TrimPrefix(line, "/load "))
			if err := loadVideo(ctx, sess, source, url); err != nil {
				fmt.Printf("Error loading video: %v\n", err)
			}

		case line == "/save":
			if err := saveOutputs(cfg, sess, lastQuestion, lastAnswer); err != nil {
				fmt.Printf("Error saving outputs: %v\n", err)
			}

		default:
			if sess.Current() == "" {
				fmt.Println("Please load a video first!")
				break
			}

			answer, err := answerQuestion(ctx, sess, gen, line)
			if err != nil {
				fmt.Printf("Error generating response: %v\n", err)
				break
			}
			lastQuestion, lastAnswer = line, answer
			fmt.Println(answer)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
		fmt.Print("> ")
	}
}

// loadVideo fetches a video's captions and loads them into the session
func loadVideo(ctx context.Context, sess session.Session, source captions.Source, url string) error {
	videoID, err := captions.ExtractVideoID(url)
	if err != nil {
		return err
	}

	if videoID == sess.Current() {
		fmt.Println("This video is already loaded.")
		return nil
	}

	fragments, err := source.Fetch(ctx, videoID)
	if err != nil {
		return err
	}

	outcome, err := sess.Load(ctx, videoID, fragments)
	if err != nil {
		return err
	}
	if outcome == session.AlreadyLoaded {
		fmt.Println("This video is already loaded.")
		return nil
	}

	fmt.Printf("Successfully loaded transcript for video %s!\n", videoID)
	return nil
}

// answerQuestion retrieves context for the question and asks the generator
func answerQuestion(ctx context.Context, sess session.Session, gen generator.Generator, question string) (string, error) {
	transcriptContext, err := sess.ContextFor(ctx, question)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	if transcriptContext == "" {
		return "", errors.New("no relevant context found in the transcript")
	}

	return gen.Answer(ctx, question, transcriptContext)
}

// saveOutputs exports the loaded transcript and the last answer as docx
func saveOutputs(cfg *config.Config, sess session.Session, question, answer string) error {
	videoID := sess.Current()
	if videoID == "" {
		return errors.New("nothing loaded to save")
	}

	timestamp := time.Now().Format("20060102_150405")

	transcriptPath := filepath.Join(cfg.Paths.Output, fmt.Sprintf("%s_%s_transcript.docx", videoID, timestamp))
	if err := export.WriteTranscript(videoID, sess.Chunks(), transcriptPath); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	fmt.Printf("Saved transcript: %s\n", transcriptPath)

	if answer != "" {
		answerPath := filepath.Join(cfg.Paths.Output, fmt.Sprintf("%s_%s_answer.docx", videoID, timestamp))
		if err := export.WriteAnswer(videoID, question, answer, answerPath); err != nil {
			return fmt.Errorf("write answer: %w", err)
		}
		fmt.Printf("Saved answer: %s\n", answerPath)
	}

	return nil
}

// srtLoadHandler loads subtitle files dropped into the captions directory
func srtLoadHandler(sess session.Session, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("read subtitle file: %w", err)
		}

		fragments, err := captions.ParseSRT(string(data))
		if err != nil {
			return fmt.Errorf("parse %s: %w", filePath, err)
		}

		name := filepath.Base(filePath)
		identifier := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), " ", "_")

		outcome, err := sess.Load(ctx, identifier, fragments)
		if err != nil {
			return err
		}
		if outcome == session.AlreadyLoaded {
			log.Info(ctx, "Transcript %s already loaded", identifier)
			return nil
		}

		log.Info(ctx, "Loaded transcript %s from %s", identifier, filePath)
		return nil
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Captions,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

// loadGeminiKeys reads Gemini API keys from the environment. Multiple
// comma-separated keys enable rotation on quota errors.
func loadGeminiKeys() []string {
	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}

	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
