package content

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pawar-yoga/studio-backend/pkg/blobstore"
	"github.com/pawar-yoga/studio-backend/pkg/db"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/metrics"
	"github.com/pawar-yoga/studio-backend/pkg/migrate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db       *db.Client
	blobs    *blobstore.Store
	registry *prometheus.Registry
	manager  Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "studio.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrate.AutoMigrate(conn))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logg := logger.New(logger.Options{ServiceName: "content-test", Output: io.Discard})
	blobs, err := blobstore.New(filepath.Join(t.TempDir(), "uploads"), logg)
	require.NoError(t, err)

	client := db.NewFromGorm(conn)
	reg := prometheus.NewRegistry()
	mgr, err := NewManager(client, blobs, metrics.NewStudioMetrics(reg), logg)
	require.NoError(t, err)
	return &fixture{db: client, blobs: blobs, registry: reg, manager: mgr}
}

func (f *fixture) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.blobs.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.DB().Model(model).Count(&n).Error)
	return n
}

func upload(name, body string) *Upload {
	return &Upload{Filename: name, Body: strings.NewReader(body)}
}

func TestCreateProductRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payload := "\x89PNG\r\n\x1a\nmat-bytes"

	id, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{
		Name:        "  Cork Yoga Mat ",
		Description: "Non-slip, 6mm",
		Price:       "1499.5",
	}, upload("cork mat.PNG", payload))
	require.NoError(t, err)
	require.NotZero(t, id)

	p, err := f.manager.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cork Yoga Mat", p.Name)
	assert.Equal(t, "Non-slip, 6mm", p.Description)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1499.50")), "price %s", p.Price)
	assert.Equal(t, "cork_mat.PNG", p.ImageFilename)

	stored, err := os.ReadFile(filepath.Join(f.blobs.Dir(), p.ImageFilename))
	require.NoError(t, err)
	assert.Equal(t, payload, string(stored))
}

func TestCreateProductDefaultsPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, raw := range []string{"", "   ", "free"} {
		id, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "Class pass", Description: "One class", Price: raw}, upload("pass.jpg", "x"))
		require.NoError(t, err, "price %q", raw)
		p, err := f.manager.GetProduct(ctx, id)
		require.NoError(t, err)
		assert.True(t, p.Price.IsZero(), "price %q stored as %s", raw, p.Price)
	}
}

func TestCreateGalleryImageDefaultsCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.manager.Create(ctx, enums.ContentKindGallery, Metadata{Title: "Sunrise flow"}, upload("sunrise.webp", "w"))
	require.NoError(t, err)
	g, err := f.manager.GetGalleryImage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, g.Category)
	assert.Equal(t, "Sunrise flow", g.Title)

	id2, err := f.manager.Create(ctx, enums.ContentKindGallery, Metadata{Title: "Retreat", Category: "retreats"}, upload("retreat.gif", "g"))
	require.NoError(t, err)
	assert.Greater(t, id2, id)

	retreats, err := f.manager.ListGallery(ctx, "retreats")
	require.NoError(t, err)
	require.Len(t, retreats, 1)
	assert.Equal(t, id2, retreats[0].ID)

	all, err := f.manager.ListGallery(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, id2, all[0].ID, "newest first")
}

func TestCreateRejectsBadFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	meta := Metadata{Name: "Mat", Description: "Blue", Title: "Pose"}

	cases := map[string]*Upload{
		"exe":      upload("setup.exe", "MZ"),
		"txt":      upload("notes.txt", "hi"),
		"no ext":   upload("png", "x"),
		"missing":  nil,
		"no name":  upload("  ", "x"),
		"sneaky":   upload("photo.png.exe", "x"),
		"nil body": {Filename: "a.png"},
	}
	for name, file := range cases {
		for _, kind := range []enums.ContentKind{enums.ContentKindProduct, enums.ContentKindGallery} {
			_, err := f.manager.Create(ctx, kind, meta, file)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInvalidFile), "%s/%s: got %v", name, kind, err)
		}
	}

	assert.Empty(t, f.files(t))
	assert.Zero(t, f.count(t, &models.Product{}))
	assert.Zero(t, f.count(t, &models.GalleryImage{}))
}

func TestCreateValidatesMetadataBeforeStoring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		kind enums.ContentKind
		meta Metadata
	}{
		{enums.ContentKindProduct, Metadata{Description: "no name"}},
		{enums.ContentKindProduct, Metadata{Name: "no description", Description: "  "}},
		{enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue", Price: "-1"}},
		{enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue", Price: "100000000"}},
		{enums.ContentKindGallery, Metadata{Title: " "}},
		{enums.ContentKind("poster"), Metadata{Title: "x"}},
	}
	for _, c := range cases {
		_, err := f.manager.Create(ctx, c.kind, c.meta, upload("ok.png", "x"))
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%+v: got %v", c, err)
	}
	assert.Empty(t, f.files(t))
}

func TestCreateRejectsValuesWiderThanColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		kind enums.ContentKind
		meta Metadata
		msg  string
	}{
		{enums.ContentKindProduct, Metadata{Name: strings.Repeat("n", MaxNameLen+1), Description: "Blue"}, "Name must be at most 100 characters"},
		{enums.ContentKindGallery, Metadata{Title: strings.Repeat("t", MaxNameLen+1)}, "Title must be at most 100 characters"},
		{enums.ContentKindGallery, Metadata{Title: "Pose", Category: strings.Repeat("c", MaxCategoryLen+1)}, "Category must be at most 50 characters"},
	}
	for _, c := range cases {
		_, err := f.manager.Create(ctx, c.kind, c.meta, upload("ok.png", "x"))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%s: got %v", c.msg, err)
		assert.Contains(t, err.Error(), c.msg)
	}
	assert.Empty(t, f.files(t))
	assert.Zero(t, f.count(t, &models.Product{}))
	assert.Zero(t, f.count(t, &models.GalleryImage{}))
}

func TestCreateKeepsLongValuesWithinColumns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	description := strings.Repeat("d", 5000)
	id, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{
		Name:        strings.Repeat("ü", MaxNameLen),
		Description: description,
	}, upload(strings.Repeat("m", 300)+".png", "x"))
	require.NoError(t, err)

	p, err := f.manager.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, description, p.Description)
	assert.LessOrEqual(t, len(p.ImageFilename), 255)
	assert.True(t, strings.HasSuffix(p.ImageFilename, ".png"), p.ImageFilename)
	assert.Equal(t, []string{p.ImageFilename}, f.files(t))
}

type failingSaveStore struct {
	*blobstore.Store
}

func (s failingSaveStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	return "", errors.New("no space left on device")
}

func TestCreateReportsFileStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	logg := logger.New(logger.Options{ServiceName: "content-test", Output: io.Discard})
	mgr, err := NewManager(f.db, failingSaveStore{f.blobs}, metrics.NewStudioMetrics(prometheus.NewRegistry()), logg)
	require.NoError(t, err)

	_, err = mgr.Create(ctx, enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue"}, upload("mat.png", "x"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeFileStorage), "got %v", err)
	assert.False(t, pkgerrors.IsCode(err, pkgerrors.CodeStorage))
	assert.Zero(t, f.count(t, &models.Product{}))
}

func TestCreateRemovesFileWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.DB().Migrator().DropTable(&models.Product{}))

	_, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue"}, upload("mat.png", "x"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStorage), "got %v", err)
	assert.Empty(t, f.files(t), "orphaned file left behind")
}

type failingRemoveStore struct {
	*blobstore.Store
}

func (s failingRemoveStore) Remove(ctx context.Context, name string) error {
	return errors.New("read-only filesystem")
}

func TestCreateReportsFailedCompensation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.db.DB().Migrator().DropTable(&models.GalleryImage{}))

	logg := logger.New(logger.Options{ServiceName: "content-test", Output: io.Discard})
	mgr, err := NewManager(f.db, failingRemoveStore{f.blobs}, metrics.NewStudioMetrics(prometheus.NewRegistry()), logg)
	require.NoError(t, err)

	_, err = mgr.Create(ctx, enums.ContentKindGallery, Metadata{Title: "Pose"}, upload("pose.png", "x"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStorage))
	assert.Contains(t, err.Error(), "read-only filesystem")
	assert.Len(t, f.files(t), 1)
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	productID, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue"}, upload("mat.png", "x"))
	require.NoError(t, err)
	galleryID, err := f.manager.Create(ctx, enums.ContentKindGallery, Metadata{Title: "Pose"}, upload("pose.jpeg", "y"))
	require.NoError(t, err)
	require.Len(t, f.files(t), 2)

	require.NoError(t, f.manager.Delete(ctx, enums.ContentKindProduct, productID))
	_, err = f.manager.GetProduct(ctx, productID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, []string{"pose.jpeg"}, f.files(t))

	err = f.manager.Delete(ctx, enums.ContentKindProduct, productID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "repeat delete: %v", err)

	require.NoError(t, f.manager.Delete(ctx, enums.ContentKindGallery, galleryID))
	assert.Empty(t, f.files(t))
}

func TestDeleteSucceedsWhenFileAlreadyGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.manager.Create(ctx, enums.ContentKindGallery, Metadata{Title: "Pose"}, upload("pose.png", "x"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(f.blobs.Dir(), "pose.png")))

	require.NoError(t, f.manager.Delete(ctx, enums.ContentKindGallery, id))
	assert.Zero(t, f.count(t, &models.GalleryImage{}))
}

func TestDeleteUnknownID(t *testing.T) {
	f := newFixture(t)
	err := f.manager.Delete(context.Background(), enums.ContentKindGallery, 404)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Contains(t, err.Error(), "Gallery image ID 404 not found")
}

func TestSameNameUploadsKeepBothFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "A", Description: "a"}, upload("mat.png", "first"))
	require.NoError(t, err)
	second, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "B", Description: "b"}, upload("mat.png", "second"))
	require.NoError(t, err)

	a, err := f.manager.GetProduct(ctx, first)
	require.NoError(t, err)
	b, err := f.manager.GetProduct(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ImageFilename, b.ImageFilename)

	data, err := os.ReadFile(filepath.Join(f.blobs.Dir(), a.ImageFilename))
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("first"), data))

	require.NoError(t, f.manager.Delete(ctx, enums.ContentKindProduct, first))
	_, err = os.Stat(filepath.Join(f.blobs.Dir(), b.ImageFilename))
	assert.NoError(t, err, "deleting one product must not remove the other's file")
}

func TestListProductsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var ids []uint64
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		id, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: name, Description: "d"}, upload(name, "x"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	rows, err := f.manager.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ids[2], rows[0].ID)
	assert.Equal(t, ids[0], rows[2].ID)
}

func TestCreateRecordsMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue"}, upload("mat.png", "x"))
	require.NoError(t, err)
	_, _ = f.manager.Create(ctx, enums.ContentKindProduct, Metadata{Name: "Mat", Description: "Blue"}, upload("mat.exe", "x"))

	mfs, err := f.registry.Gather()
	require.NoError(t, err)
	found := map[string]bool{}
	for _, mf := range mfs {
		found[mf.GetName()] = true
	}
	assert.True(t, found["yoga_content_created_total"])
	assert.True(t, found["yoga_operation_failures_total"])
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	logg := logger.New(logger.Options{Output: io.Discard})
	_, err := NewManager(nil, &blobstore.Store{}, nil, logg)
	assert.Error(t, err)
	_, err = NewManager(db.NewFromGorm(&gorm.DB{}), nil, nil, logg)
	assert.Error(t, err)
}
