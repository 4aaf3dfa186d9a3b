package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const driveDownloadURL = "https://drive.google.com/uc?export=download&id="

// DriveStager uploads payloads to Google Drive and grants anyone read access.
type DriveStager struct {
	svc      *drive.Service
	folderID string
	limit    int64
}

// NewDriveStager authenticates with a service-account key and builds a stager.
// folderID may be empty to upload into the account root.
func NewDriveStager(ctx context.Context, credentialsJSON []byte, folderID string, limit int64) (*DriveStager, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}
	svc, err := drive.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewDriveStagerWithService(svc, folderID, limit), nil
}

// NewDriveStagerWithService builds a stager around an existing service.
func NewDriveStagerWithService(svc *drive.Service, folderID string, limit int64) *DriveStager {
	return &DriveStager{svc: svc, folderID: folderID, limit: normalizeLimit(limit)}
}

// Stage uploads data and returns its public download URL.
func (s *DriveStager) Stage(ctx context.Context, data []byte, fileName, mimeType string) (string, error) {
	if err := checkSize(data, s.limit); err != nil {
		return "", err
	}

	file := &drive.File{
		Name:     fileName,
		MimeType: mimeType,
	}
	if s.folderID != "" {
		file.Parents = []string{s.folderID}
	}

	uploaded, err := s.svc.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	permission := &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}
	if _, err := s.svc.Permissions.Create(uploaded.Id, permission).Context(ctx).Do(); err != nil {
		s.discard(ctx, uploaded.Id)
		return "", fmt.Errorf("share file %s: %w", uploaded.Id, err)
	}

	slog.Info("staged file on drive",
		slog.String("file_id", uploaded.Id),
		slog.String("file_name", fileName),
		slog.Int("size", len(data)))

	return driveDownloadURL + uploaded.Id, nil
}

// discard removes an upload that could not be shared. Failures are only logged.
func (s *DriveStager) discard(ctx context.Context, fileID string) {
	if err := s.svc.Files.Delete(fileID).Context(context.WithoutCancel(ctx)).Do(); err != nil {
		slog.Warn("failed to delete unshared drive file",
			slog.String("file_id", fileID),
			slog.String("error", err.Error()))
	}
}
