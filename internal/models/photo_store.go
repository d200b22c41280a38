package models

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joshua-takyi/skillswap/internal/apperrors"
)

const AvatarFolder = "avatars"

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld, folder: AvatarFolder}
}

// UploadPhoto stores the image under key, replacing any previous upload with
// the same key, and returns its https URL.
func (cs *CloudinaryStore) UploadPhoto(ctx context.Context, key string, file io.Reader) (string, error) {
	res, err := cs.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: key,
		Folder:   cs.folder,
		Tags:     []string{"skillswap"},
	})
	if err != nil {
		return "", apperrors.StoreUnavailable(err, "failed to upload photo")
	}
	if res.Error.Message != "" {
		return "", apperrors.StoreUnavailable(fmt.Errorf("%s", res.Error.Message), "failed to upload photo")
	}
	return res.SecureURL, nil
}

func (cs *CloudinaryStore) DeletePhoto(ctx context.Context, key string) error {
	res, err := cs.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: cs.folder + "/" + key,
	})
	if err != nil {
		return apperrors.StoreUnavailable(err, "failed to delete photo")
	}
	if res.Error.Message != "" {
		return apperrors.StoreUnavailable(fmt.Errorf("%s", res.Error.Message), "failed to delete photo")
	}
	return nil
}
