package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	redispersist "github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
)

// 端到端测试辅助工具
// 完整的服务栈（路由→处理器→领域服务→Redis仓储）跑在httptest之上，
// Redis用miniredis内嵌实例，测试自带全部依赖，不需要外部进程

// Envelope 统一响应信封
// 数据字段用原始映射承载，便于断言字段的有无（比如多余字段是否被回显）
type Envelope struct {
	Status      bool             `json:"status"`
	Message     string           `json:"message"`
	Book        map[string]any   `json:"book"`
	Books       []map[string]any `json:"books"`
	NewBook     map[string]any   `json:"newBook"`
	UpdatedBook map[string]any   `json:"updatedBook"`
}

// NewTestServer 启动完整服务栈
// key前缀用测试命名空间，与生产前缀的数据天然隔离
func NewTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	repo := redispersist.NewBookRepository(client, "books_test")
	svc := book.NewService(repo)
	bookHandler := handler.NewBookHandler(svc)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
	}
	router := handler.NewRouter(cfg, zap.NewNop(), bookHandler)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = client.Close()
	})

	return srv
}

// DoJSON 发起请求并解析响应信封
// 204等无响应体的场景返回空信封
func DoJSON(t *testing.T, method, url string, payload any) (int, *Envelope) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err, "序列化请求体失败")
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "创建HTTP请求失败")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	env := &Envelope{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, env), "解析JSON响应失败: %s", string(body))
	}

	return resp.StatusCode, env
}

// DoRaw 发起不经过JSON序列化的请求（用于构造畸形请求体）
func DoRaw(t *testing.T, method, url, body string) (int, *Envelope, http.Header) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "创建HTTP请求失败")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	env := &Envelope{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, env), "解析JSON响应失败: %s", string(raw))
	}

	return resp.StatusCode, env, resp.Header
}

// BookFixtures 测试用图书数据
func BookFixtures() []map[string]any {
	return []map[string]any{
		{"title": "Dune", "author": "Frank Herbert", "publicationYear": 1965, "ISBN": "9780441013593"},
		{"title": "Neuromancer", "author": "William Gibson", "publicationYear": 1984, "ISBN": "9780441569595"},
		{"title": "The Left Hand of Darkness", "author": "Ursula K. Le Guin", "publicationYear": 1969, "ISBN": "9780441478125"},
	}
}

// SeedBooks 通过API写入测试数据
func SeedBooks(t *testing.T, baseURL string, fixtures []map[string]any) {
	t.Helper()

	for _, f := range fixtures {
		status, env := DoJSON(t, http.MethodPost, baseURL+"/books", f)
		require.Equal(t, http.StatusCreated, status, "写入测试数据失败: %s", env.Message)
	}
}
