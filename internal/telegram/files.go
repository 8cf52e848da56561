package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/go-telegram/bot"

	"github.com/set-night/sofia/internal/capture"
	"github.com/set-night/sofia/internal/config"
)

// ErrFileTooLarge is returned before downloading files above the attachment limit.
var ErrFileTooLarge = capture.ErrTooLarge

// DownloadFile streams a Telegram file through a capture.Recorder and returns
// its content together with the file name Telegram stores it under.
func DownloadFile(ctx context.Context, b *bot.Bot, fileID string) ([]byte, string, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}
	if file.FileSize > config.MaxAttachmentSize {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.FileSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: http %d", resp.StatusCode)
	}

	rec := capture.NewRecorder(config.MaxAttachmentSize)
	if _, err := io.Copy(rec, resp.Body); err != nil {
		return nil, "", fmt.Errorf("read file data: %w", err)
	}
	data, err := rec.Stop()
	if err != nil {
		return nil, "", fmt.Errorf("finish download: %w", err)
	}

	return data, path.Base(file.FilePath), nil
}
