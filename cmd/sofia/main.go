package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/set-night/sofia/internal/audio"
	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/logger"
	"github.com/set-night/sofia/internal/service"
)

var (
	errNoPrompt      = errors.New("a prompt or --file is required")
	errNoText        = errors.New("text is required")
	errNoAudio       = errors.New("no audio returned")
	errRequestFailed = errors.New("request failed")
)

var askCommand = &cli.Command{
	Name:      "ask",
	Usage:     "Ask Sofia a question",
	ArgsUsage: "<prompt>",
	Description: `The prompt is taken from the arguments, or from stdin when no arguments are given.
				A file passed with --file is sent inline with the question; without a prompt it is analyzed with a default prompt.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "lang",
			Usage:   "Answer language: pl or ru",
			Aliases: []string{"l"},
		},
		&cli.StringFlag{
			Name:    "file",
			Usage:   "Path to a file to attach",
			Aliases: []string{"f"},
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := setup(c)
		if err != nil {
			return err
		}

		lang := cfg.Language()
		if c.String("lang") != "" {
			if lang, err = domain.ParseLanguage(c.String("lang")); err != nil {
				return err
			}
		}

		var file *domain.AttachedFile
		if path := c.String("file"); path != "" {
			if file, err = readAttachment(path); err != nil {
				return err
			}
		}

		prompt, err := promptFrom(c)
		if err != nil {
			return err
		}
		if prompt == "" {
			if file == nil {
				return errNoPrompt
			}
			prompt = config.DefaultFilePrompt
		}

		client := service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
		answer := service.NewChatService(client, cfg.ChatModel, nil).Ask(c.Context, prompt, lang, file.Inline())

		out := c.App.Writer
		fmt.Fprintln(out, answer.Text)
		if len(answer.Sources) > 0 {
			fmt.Fprintln(out)
			for i, src := range answer.Sources {
				fmt.Fprintf(out, "[%d] %s - %s\n", i+1, src.DisplayTitle(), src.URI)
			}
		}
		if answer.IsFallback() {
			return errRequestFailed
		}
		return nil
	},
}

var speakCommand = &cli.Command{
	Name:      "speak",
	Usage:     "Synthesize text into a WAV file",
	ArgsUsage: "<text>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Usage:   "Output WAV path",
			Aliases: []string{"o"},
			Value:   "sofia.wav",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := setup(c)
		if err != nil {
			return err
		}

		text, err := promptFrom(c)
		if err != nil {
			return err
		}
		if text == "" {
			return errNoText
		}

		client := service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
		pcm := service.NewSpeechService(client, cfg.SpeechModel, cfg.SpeechVoice, nil).Synthesize(c.Context, text)
		if pcm == nil {
			return errNoAudio
		}

		buf, err := audio.Decode(pcm, config.SpeechSampleRate, config.SpeechChannels)
		if err != nil {
			return err
		}
		wav, err := audio.EncodeWAV(buf)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.String("out"), wav, 0o644); err != nil {
			return fmt.Errorf("write wav: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "%s: %.2fs\n", c.String("out"), buf.Duration().Seconds())
		return nil
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "sofia",
		Usage:    "Polish accounting and legal assistant from the command line",
		Commands: []*cli.Command{askCommand, speakCommand},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and routes logs to stderr so stdout carries only the answer.
func setup(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.New(c.App.ErrWriter, config.LogFormatPretty, cfg.Level()))
	return cfg, nil
}

// promptFrom joins the positional arguments, or reads stdin when it is piped.
func promptFrom(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.TrimSpace(strings.Join(c.Args().Slice(), " ")), nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func readAttachment(path string) (*domain.AttachedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if len(data) > config.MaxAttachmentSize {
		return nil, fmt.Errorf("read attachment: %d bytes exceeds the %d byte limit", len(data), config.MaxAttachmentSize)
	}
	mimeType, _, _ := strings.Cut(mime.TypeByExtension(filepath.Ext(path)), ";")
	return domain.NewAttachedFile(filepath.Base(path), mimeType, data), nil
}
