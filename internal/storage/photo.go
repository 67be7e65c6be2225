package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/lmiguelviana/pet-connect-sub000/internal/config"
)

// Lado máximo da foto armazenada, em pixels
const maxPhotoSize = 512

// PhotoStore grava fotos de pets em um bucket S3 (ou compatível),
// sempre reencodadas em WebP.
type PhotoStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		// Sem credenciais → upload de foto desabilitado
		return &PhotoStore{}
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	// Endpoint customizado para MinIO e afins
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &PhotoStore{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}
}

func (s *PhotoStore) Enabled() bool {
	return s.client != nil
}

// UploadPetPhoto decodifica, redimensiona, converte para WebP e envia.
// Retorna a URL pública da foto.
func (s *PhotoStore) UploadPetPhoto(
	ctx context.Context,
	petshopID uint,
	petID uint,
	r io.Reader,
) (string, error) {

	if !s.Enabled() {
		return "", fmt.Errorf("photo storage not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	resized := resize(src, maxPhotoSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf(
		"petshops/%d/pets/%d/%s.webp",
		petshopID,
		petID,
		uuid.NewString(),
	)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func resize(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxSide && h <= maxSide {
		return src
	}

	if w > h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
