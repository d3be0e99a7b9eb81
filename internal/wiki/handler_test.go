package wiki_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"terminal-terrace/wiki-service/config"
	"terminal-terrace/wiki-service/internal/dto"
	"terminal-terrace/wiki-service/internal/testutils"
	wikiPkg "terminal-terrace/wiki-service/internal/wiki"
	"terminal-terrace/wiki-service/pkg/response"
)

// getRevisions 用测试上下文直接调用修订历史 handler
func getRevisions(t *testing.T, h *wikiPkg.WikiHandler, articleID uint, query string) dto.RevisionHistoryResponse {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET",
		fmt.Sprintf("/wiki/articles/%d/revisions?%s", articleID, query), nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(articleID)}}

	h.GetRevisions(c)

	var body struct {
		Code response.ResponseCode       `json:"code"`
		Data dto.RevisionHistoryResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if body.Code != response.Success {
		t.Fatalf("响应码应为 Success, got %d", body.Code)
	}
	return body.Data
}

// limit 超出上限时收敛到 100，缺省或非法时回落配置默认值
func TestGetRevisions_LimitCap(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutils.SetupTestDB(t)
	editor := testutils.CreateTestUser(db)
	service := wikiPkg.NewWikiService(db, nil, "en")

	art, err := service.CreateArticle(dto.CreateWikiRequest{
		Title:    "Handler Article",
		Contents: "v1",
	}, editor.ID)
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	h := wikiPkg.NewWikiHandler(db, nil, config.WikiConfig{
		DefaultLanguage:  "en",
		HistoryPageLimit: 50,
	})

	if got := getRevisions(t, h, art.ID, "limit=500").Limit; got != 100 {
		t.Errorf("超限 limit 应收敛到 100, got %d", got)
	}
	if got := getRevisions(t, h, art.ID, "limit=0").Limit; got != 50 {
		t.Errorf("非法 limit 应回落默认值 50, got %d", got)
	}
	if got := getRevisions(t, h, art.ID, "").Limit; got != 50 {
		t.Errorf("缺省 limit 应为配置默认值 50, got %d", got)
	}
	if got := getRevisions(t, h, art.ID, "limit=20").Limit; got != 20 {
		t.Errorf("合法 limit 应原样生效, got %d", got)
	}
}
