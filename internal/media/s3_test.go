package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	putIn   *s3.PutObjectInput
	putErr  error
	getErr  error
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putIn = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[*in.Bucket+"/"+*in.Key] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func TestS3_SaveAndOpen(t *testing.T) {
	stubID(t, "f00d")
	fake := &fakeObjects{}
	st := newS3Store(fake, "diary", "")
	st.now = func() time.Time { return time.Date(2024, 1, 9, 18, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	ref, err := st.Save(ctx, strings.NewReader("jpeg"), ".jpg")
	require.NoError(t, err)
	assert.Equal(t, "s3://diary/media/2024/01/09/f00d.jpg", ref)
	assert.Equal(t, "image/jpeg", aws.ToString(fake.putIn.ContentType))

	rc, err := st.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(b))
}

func TestS3_Errors(t *testing.T) {
	ctx := context.Background()

	st := newS3Store(&fakeObjects{putErr: errors.New("denied")}, "diary", "photos/")
	_, err := st.Save(ctx, strings.NewReader("x"), ".bin")
	require.ErrorContains(t, err, "denied")

	st = newS3Store(&fakeObjects{getErr: errors.New("timeout")}, "diary", "")
	_, err = st.Open(ctx, "s3://diary/media/x.jpg")
	require.ErrorContains(t, err, "timeout")
}

func TestParseRef(t *testing.T) {
	bucket, key, err := parseRef("s3://diary/media/2024/01/09/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "diary", bucket)
	assert.Equal(t, "media/2024/01/09/a.jpg", key)

	for _, bad := range []string{"/data/media/a.jpg", "s3://diary", "s3:///key", "s3://diary/"} {
		_, _, err := parseRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewS3(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{})
	require.Error(t, err)

	origLoad, origClient := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origClient })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3(context.Background(), S3Config{Bucket: "diary"})
	require.ErrorContains(t, err, "no config")

	var opts s3.Options
	loadDefaultAWSConfig = origLoad
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &fakeObjects{}
	}
	st, err := NewS3(context.Background(), S3Config{Bucket: "diary", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000/"})
	require.NoError(t, err)
	assert.Equal(t, "media", st.prefix)
	assert.Equal(t, "http://127.0.0.1:9000/", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
