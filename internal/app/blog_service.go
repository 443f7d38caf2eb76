package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gopherblog/internal/model"
)

const postsPerPage = 20

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("requester is not the post author")
)

// PostStore is the persistence surface BlogService needs. Not-found is
// reported as a nil post, not an error.
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	List(offset, limit int) ([]model.Post, error)
	Count() (int64, error)
	UpdateMessage(id, message string) (*model.Post, error)
	DeleteByID(id string) (*model.Post, error)
}

type PostEventPublisher interface {
	Publish(ctx context.Context, event model.PostEvent) error
}

type ListCache interface {
	GetFirstPage(ctx context.Context) ([]model.Post, int64, bool, error)
	SetFirstPage(ctx context.Context, posts []model.Post, total int64) error
	MarkDirty(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
}

// BlogService applies the ownership rules on top of the store: anyone may
// create and read, only the author may update or delete. The cache and
// publisher are optional and best-effort; post mutations are persisted
// through the store before either is touched.
type BlogService struct {
	postStore PostStore
	publisher PostEventPublisher
	listCache ListCache
}

type CreatePostInput struct {
	AuthorID string
	Date     *time.Time
	Message  string
}

type ListPostsResult struct {
	Posts       []model.Post
	TotalPages  int
	CurrentPage int
}

func NewBlogService(postStore PostStore, publisher PostEventPublisher, listCache ListCache) *BlogService {
	return &BlogService{
		postStore: postStore,
		publisher: publisher,
		listCache: listCache,
	}
}

func (s *BlogService) CreatePost(input CreatePostInput) (*model.Post, error) {
	if input.AuthorID == "" {
		return nil, ErrInvalidInput
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		Message: message,
		Author:  input.AuthorID,
	}
	if input.Date != nil {
		post.Date = *input.Date
	}
	if err := s.postStore.Create(post); err != nil {
		return nil, err
	}

	s.afterMutation("created", post)
	return post, nil
}

// ListPosts is public. The page size is fixed at 20 and page falls back to
// 1 when absent or invalid.
func (s *BlogService) ListPosts(page int) (*ListPostsResult, error) {
	if page < 1 {
		page = 1
	}

	ctx := context.Background()
	if page == 1 && s.listCache != nil {
		if dirty, err := s.listCache.IsDirty(ctx); err == nil && !dirty {
			if posts, total, hit, err := s.listCache.GetFirstPage(ctx); err == nil && hit {
				return &ListPostsResult{
					Posts:       posts,
					TotalPages:  totalPages(total),
					CurrentPage: page,
				}, nil
			}
		}
	}

	total, err := s.postStore.Count()
	if err != nil {
		return nil, err
	}
	posts, err := s.postStore.List((page-1)*postsPerPage, postsPerPage)
	if err != nil {
		return nil, err
	}

	if page == 1 && s.listCache != nil {
		if dirty, err := s.listCache.IsDirty(ctx); err == nil && !dirty {
			_ = s.listCache.SetFirstPage(ctx, posts, total)
		}
	}

	return &ListPostsResult{
		Posts:       posts,
		TotalPages:  totalPages(total),
		CurrentPage: page,
	}, nil
}

func (s *BlogService) UpdatePost(requesterID, postID, message string) (*model.Post, error) {
	if requesterID == "" || postID == "" {
		return nil, ErrInvalidInput
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Author != requesterID {
		return nil, ErrNotPostAuthor
	}

	updated, err := s.postStore.UpdateMessage(postID, message)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}

	s.afterMutation("updated", updated)
	return updated, nil
}

func (s *BlogService) DeletePost(requesterID, postID string) (*model.Post, error) {
	if requesterID == "" || postID == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Author != requesterID {
		return nil, ErrNotPostAuthor
	}

	deleted, err := s.postStore.DeleteByID(postID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrPostNotFound
	}

	s.afterMutation("deleted", deleted)
	return deleted, nil
}

// afterMutation marks the cached listing dirty and hands the event to the
// broker. Both are best-effort: the post is already persisted and a stale
// cache entry expires on its own TTL.
func (s *BlogService) afterMutation(action string, post *model.Post) {
	ctx := context.Background()
	if s.listCache != nil {
		if err := s.listCache.MarkDirty(ctx); err != nil {
			log.Printf("mark list cache dirty failed: %v", err)
		}
	}
	if s.publisher != nil {
		event := model.PostEvent{
			Action:     action,
			PostID:     post.ID,
			Author:     post.Author,
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish post event failed: %v", err)
		}
	}
}

func totalPages(total int64) int {
	return int((total + postsPerPage - 1) / postsPerPage)
}
