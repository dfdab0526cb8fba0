package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordibrook/marketing-api/internal/models"
	"github.com/jordibrook/marketing-api/internal/transfer"
)

type fakeDocumentRepo struct {
	docs     map[int64]*models.Document
	contents map[int64]string
	nextID   int64
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:     make(map[int64]*models.Document),
		contents: make(map[int64]string),
	}
}

func (f *fakeDocumentRepo) CreateWithVersion(ctx context.Context, doc *models.Document, content string) (int64, error) {
	f.nextID++
	stored := *doc
	stored.ID = f.nextID
	stored.CurrentVersion = 1
	f.docs[stored.ID] = &stored
	f.contents[stored.ID] = content
	return stored.ID, nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	return f.docs[id], nil
}

func (f *fakeDocumentRepo) List(ctx context.Context, userID int64, filter *transfer.DocumentFilter) ([]*models.Document, error) {
	var out []*models.Document
	for _, doc := range f.docs {
		if doc.UserID != userID {
			continue
		}
		if filter != nil && filter.DocType != "" && doc.DocType != filter.DocType {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeDocumentRepo) ListVersions(ctx context.Context, documentID int64) ([]*models.DocumentVersion, error) {
	if _, ok := f.docs[documentID]; !ok {
		return nil, nil
	}
	return []*models.DocumentVersion{
		{DocumentID: documentID, Version: 1, Content: f.contents[documentID]},
	}, nil
}

func (f *fakeDocumentRepo) CheckByUserID(ctx context.Context, documentID, userID int64) (bool, error) {
	doc, ok := f.docs[documentID]
	return ok && doc.UserID == userID, nil
}

func (f *fakeDocumentRepo) Remove(ctx context.Context, id int64) error {
	delete(f.docs, id)
	return nil
}

type fakeCollectionRepo struct {
	cols   map[int64]*models.Collection
	nextID int64
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{cols: make(map[int64]*models.Collection)}
}

func (f *fakeCollectionRepo) Create(ctx context.Context, col *models.Collection) (int64, error) {
	f.nextID++
	stored := *col
	stored.ID = f.nextID
	f.cols[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeCollectionRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Collection, error) {
	var out []*models.Collection
	for _, col := range f.cols {
		if col.UserID == userID {
			out = append(out, col)
		}
	}
	return out, nil
}

func (f *fakeCollectionRepo) CheckByUserID(ctx context.Context, collectionID, userID int64) (bool, error) {
	col, ok := f.cols[collectionID]
	return ok && col.UserID == userID, nil
}

func (f *fakeCollectionRepo) Remove(ctx context.Context, id int64) error {
	delete(f.cols, id)
	return nil
}

func TestCreateDocument(t *testing.T) {
	docs := newFakeDocumentRepo()
	cols := newFakeCollectionRepo()
	s := NewKnowledgeService(docs, cols)

	id, err := s.CreateDocument(context.Background(), 1, &transfer.DocumentCreation{
		Title:   "Brand guidelines",
		Content: "Always use the blue logo.",
		DocType: "guideline",
		Tags:    []string{"brand"},
	})
	require.NoError(t, err)

	detail, err := s.DocumentInfo(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, "Brand guidelines", detail.Title)
	assert.Equal(t, 1, detail.CurrentVersion)
	require.Len(t, detail.Versions, 1)
	assert.Equal(t, "Always use the blue logo.", detail.Versions[0].Content)
}

func TestCreateDocumentChecksCollectionOwnership(t *testing.T) {
	docs := newFakeDocumentRepo()
	cols := newFakeCollectionRepo()
	s := NewKnowledgeService(docs, cols)

	otherUsersCol, err := cols.Create(context.Background(), &models.Collection{UserID: 2, Name: "theirs"})
	require.NoError(t, err)

	_, err = s.CreateDocument(context.Background(), 1, &transfer.DocumentCreation{
		Title:        "Sneaky",
		Content:      "x",
		DocType:      "note",
		CollectionID: &otherUsersCol,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, docs.docs)
}

func TestDocumentOwnershipHidesForeignDocs(t *testing.T) {
	docs := newFakeDocumentRepo()
	s := NewKnowledgeService(docs, newFakeCollectionRepo())

	id, err := s.CreateDocument(context.Background(), 1, &transfer.DocumentCreation{
		Title:   "Mine",
		Content: "x",
		DocType: "note",
	})
	require.NoError(t, err)

	_, err = s.DocumentInfo(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteDocument(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollections(t *testing.T) {
	s := NewKnowledgeService(newFakeDocumentRepo(), newFakeCollectionRepo())

	_, err := s.CreateCollection(context.Background(), 1, &transfer.CollectionCreation{})
	assert.Error(t, err)

	id, err := s.CreateCollection(context.Background(), 1, &transfer.CollectionCreation{Name: "Playbooks"})
	require.NoError(t, err)

	listed, err := s.ListCollections(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Playbooks", listed[0].Name)

	require.NoError(t, s.DeleteCollection(context.Background(), 1, id))
	listed, err = s.ListCollections(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
