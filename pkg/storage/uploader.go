// Package storage pushes product images out to their storage targets.
// Uploads go to Cloudinary first and the document store's image bucket
// second, sequentially; either target may fail as long as the other takes
// the image. The redundancy is advisory, not transactional.
package storage

import (
	"bytes"
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/drezzup/storefront/pkg/config"
	"github.com/drezzup/storefront/pkg/repository"
	"go.uber.org/zap"
)

// Result carries the URLs an upload produced. URL is the one to store on
// the product: the Cloudinary URL when available, the bucket path otherwise.
type Result struct {
	URL           string `json:"url"`
	CloudinaryURL string `json:"cloudinaryUrl,omitempty"`
	BucketURL     string `json:"bucketUrl,omitempty"`
}

type Uploader struct {
	cld    *cloudinary.Cloudinary
	store  *repository.Store
	preset string
	logger *zap.Logger
}

func NewUploader(cfg *config.CloudinaryConfig, store *repository.Store, logger *zap.Logger) (*Uploader, error) {
	u := &Uploader{
		store:  store,
		preset: cfg.UploadPreset,
		logger: logger,
	}

	// Cloudinary is optional: without a credential URL the bucket becomes
	// the only target.
	if cfg.URL != "" {
		cld, err := cloudinary.NewFromURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		u.cld = cld
	}

	return u, nil
}

// Upload compresses an image and pushes it to both targets. It fails only
// when neither target accepted the image; partial success logs the losing
// side and moves on.
func (u *Uploader) Upload(ctx context.Context, name string, data []byte) (Result, error) {
	data = Compress(data)

	var res Result

	if u.cld != nil {
		up, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
			PublicID:     name,
			UploadPreset: u.preset,
		})
		if err != nil {
			u.logger.Warn("Cloudinary upload failed", zap.String("name", name), zap.Error(err))
		} else {
			res.CloudinaryURL = up.SecureURL
		}
	}

	path, err := u.store.SaveImage(name, data)
	if err != nil {
		u.logger.Warn("Image bucket upload failed", zap.String("name", name), zap.Error(err))
	} else {
		res.BucketURL = path
	}

	if res.CloudinaryURL == "" && res.BucketURL == "" {
		return res, errors.New("failed to upload image to any storage target")
	}

	res.URL = res.CloudinaryURL
	if res.URL == "" {
		res.URL = res.BucketURL
	}
	return res, nil
}
