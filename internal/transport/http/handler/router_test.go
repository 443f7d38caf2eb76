package handler

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/middleware"
)

const testSecret = "handler-test-secret"

// memUserStore and memPostStore back the handlers with in-memory state so
// the full route table can be exercised without MySQL.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*model.User{}}
}

func (s *memUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByID(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type memPostStore struct {
	mu    sync.Mutex
	posts []model.Post
}

func newMemPostStore() *memPostStore {
	return &memPostStore{}
}

func (s *memPostStore) Create(post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Date.IsZero() {
		post.Date = time.Now()
	}
	s.posts = append(s.posts, *post)
	return nil
}

func (s *memPostStore) GetByID(id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			copied := s.posts[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memPostStore) List(offset, limit int) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offset >= len(s.posts) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.posts) {
		end = len(s.posts)
	}
	page := make([]model.Post, end-offset)
	copy(page, s.posts[offset:end])
	return page, nil
}

func (s *memPostStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.posts)), nil
}

func (s *memPostStore) UpdateMessage(id, message string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Message = message
			copied := s.posts[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memPostStore) DeleteByID(id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			copied := s.posts[i]
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return &copied, nil
		}
	}
	return nil, nil
}

type testEnv struct {
	router    *gin.Engine
	userStore *memUserStore
	postStore *memPostStore
}

// newTestEnv assembles the public route table over in-memory stores,
// mirroring the wiring in transport/http.NewRouter.
func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	userStore := newMemUserStore()
	postStore := newMemPostStore()
	authService := app.NewAuthService(userStore, testSecret)
	blogService := app.NewBlogService(postStore, nil, nil)
	authHandler := NewAuthHandler(authService)
	blogHandler := NewBlogHandler(blogService)

	authRequired := middleware.AuthJWT(testSecret)

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Hello!")
	})
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/protected", authRequired, authHandler.Protected)
	router.POST("/blogs", authRequired, blogHandler.Create)
	router.GET("/blogs", blogHandler.List)
	router.PUT("/blogs/:id", authRequired, blogHandler.Update)
	router.DELETE("/blogs/:id", authRequired, blogHandler.Delete)

	return &testEnv{
		router:    router,
		userStore: userStore,
		postStore: postStore,
	}
}
