package customization

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/shared"
)

// ObjectStorageService abstracts the object store holding customer briefs
// and design deliverables. File references on requests are opaque storage
// keys; URLs are minted on demand and expire.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// FileService mints presigned URLs for request files. Access is limited to
// the request's participants: the customer, the assigned designer, and the
// selected shop.
type FileService struct {
	requestRepo customization.RequestRepository
	storage     ObjectStorageService
	urlExpiry   time.Duration
}

// NewFileService creates a new FileService
func NewFileService(requestRepo customization.RequestRepository, storage ObjectStorageService, urlExpiry time.Duration) *FileService {
	if urlExpiry <= 0 {
		urlExpiry = 15 * time.Minute
	}
	return &FileService{
		requestRepo: requestRepo,
		storage:     storage,
		urlExpiry:   urlExpiry,
	}
}

// FileUploadResponse carries a presigned upload URL and the storage key to
// attach to the request once the upload completes
type FileUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// FileDownloadResponse carries a presigned download URL
type FileDownloadResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// GenerateUploadURL mints an upload URL scoped to a request. The storage key
// embeds the request ID so files stay grouped per request.
func (s *FileService) GenerateUploadURL(ctx context.Context, actor shared.Actor, requestID uuid.UUID, filename, contentType string) (*FileUploadResponse, error) {
	if filename == "" {
		return nil, shared.NewValidationError("FILENAME_REQUIRED", "A filename is required")
	}

	r, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.guardParticipant(actor, r); err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("requests/%s/%s-%s", requestID, uuid.New(), path.Base(filename))
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.urlExpiry)
	if err != nil {
		return nil, shared.NewDependencyError("STORAGE_UNAVAILABLE", "Could not generate upload URL")
	}

	return &FileUploadResponse{
		StorageKey: storageKey,
		UploadURL:  url,
		ExpiresAt:  expiresAt,
	}, nil
}

// ResolveDownloadURL mints a download URL for a storage key already attached
// to the request
func (s *FileService) ResolveDownloadURL(ctx context.Context, actor shared.Actor, requestID uuid.UUID, storageKey string) (*FileDownloadResponse, error) {
	r, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.guardParticipant(actor, r); err != nil {
		return nil, err
	}
	if !r.HasFile(storageKey) {
		return nil, shared.NewDomainError(shared.ErrorKindNotFound, "FILE_NOT_FOUND", "The file is not attached to this request")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.urlExpiry)
	if err != nil {
		return nil, shared.NewDependencyError("STORAGE_UNAVAILABLE", "Could not generate download URL")
	}

	return &FileDownloadResponse{
		StorageKey:  storageKey,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *FileService) guardParticipant(actor shared.Actor, r *customization.CustomizationRequest) error {
	switch {
	case actor.IsCustomer() && actor.ID == r.CustomerID:
		return nil
	case actor.IsDesigner() && r.DesignerID != nil && actor.ID == *r.DesignerID:
		return nil
	case actor.IsShop() && r.ShopID != nil && actor.ID == *r.ShopID:
		return nil
	case actor.Role == shared.ActorRoleAdmin:
		return nil
	}
	return shared.NewPermissionError("NOT_REQUEST_PARTICIPANT", "Only the request's participants may access its files")
}
