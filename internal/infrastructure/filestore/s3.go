package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jhoicas/portal-notas/internal/domain"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

var _ repository.FileStore = (*S3Store)(nil)

// S3Options conexión al bucket. Endpoint vacío = AWS; con Endpoint (MinIO) se usa path-style.
type S3Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	Prefix       string // carpeta dentro del bucket, por defecto "PDF"
	PublicPrefix string // ruta pública devuelta en StoredFile.Path
	MaxBytes     int64
}

// S3Store guarda los adjuntos como objetos.
type S3Store struct {
	client *s3.Client
	opts   S3Options
	now    func() time.Time
}

// NewS3Store construye el cliente con credenciales estáticas.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket requerido")
	}
	if opts.Prefix == "" {
		opts.Prefix = "PDF"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: cargar configuración: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// MinIO y gateways compatibles no siempre aceptan los checksums CRC por defecto
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, opts: opts, now: time.Now}, nil
}

func (s *S3Store) key(name string) string {
	return strings.Trim(s.opts.Prefix, "/") + "/" + name
}

// Save sube el archivo completo. El contenido se lee en memoria (con límite) para conocer su tamaño.
func (s *S3Store) Save(ctx context.Context, originalName, contentType string, r io.Reader) (*repository.StoredFile, error) {
	src := r
	if s.opts.MaxBytes > 0 {
		src = io.LimitReader(r, s.opts.MaxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("s3: leer adjunto: %w", err)
	}
	if s.opts.MaxBytes > 0 && int64(len(data)) > s.opts.MaxBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, s.opts.MaxBytes)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	name := StoredName(originalName, s.now())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: subir %s: %w", name, err)
	}
	return &repository.StoredFile{
		Name: name,
		Path: strings.TrimRight(s.opts.PublicPrefix, "/") + "/" + name,
		Size: int64(len(data)),
	}, nil
}

// Open descarga el objeto. Un objeto inexistente es domain.ErrNotFound.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: nombre de archivo inválido", domain.ErrInvalidInput)
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: adjunto %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("s3: descargar %s: %w", name, err)
	}
	return out.Body, nil
}
