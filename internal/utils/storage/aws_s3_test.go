package storage

import (
	"Recipe-Website/domain"
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	puts    map[string][]byte
	deleted []string
}

func (f *fakeObjectAPI) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestUploadFile(t *testing.T) {
	api := &fakeObjectAPI{puts: map[string][]byte{}}
	store := &awsS3{client: api, bucket: "recipes", region: "eu-west-1"}
	ctx := context.Background()

	key, err := store.UploadFile(ctx, "pancakes", fileHeader(t, "photo.JPG", "img"), "recipes", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "recipes/pancakes.jpg", key)
	assert.Equal(t, []byte("img"), api.puts[key])

	link := store.GetPublicLinkKey(key)
	assert.Equal(t, "https://recipes.s3.eu-west-1.amazonaws.com/recipes/pancakes.jpg", link)
	assert.Equal(t, key, store.GetObjectKeyFromLink(link))
	assert.Equal(t, "", store.GetObjectKeyFromLink("https://example.com/x.png"))

	require.NoError(t, store.DeleteFile(ctx, key))
	assert.Equal(t, []string{key}, api.deleted)
}

func TestUploadFileRejectsExtension(t *testing.T) {
	store := &awsS3{client: &fakeObjectAPI{puts: map[string][]byte{}}, bucket: "recipes", region: "eu-west-1"}

	_, err := store.UploadFile(context.Background(), "", fileHeader(t, "script.exe", "x"), "recipes", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}

func TestDisabledStore(t *testing.T) {
	store := &awsS3{}

	assert.False(t, store.Enabled())
	_, err := store.UploadFile(context.Background(), "", fileHeader(t, "a.png", "x"), "recipes", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrImageStorageUnavailable)
	assert.NoError(t, store.DeleteFile(context.Background(), "recipes/a.png"))
	assert.Equal(t, "", store.GetObjectKeyFromLink("https://x"))
}
