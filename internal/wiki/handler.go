package wiki

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/wiki-service/config"
	"terminal-terrace/wiki-service/internal/dto"
	"terminal-terrace/wiki-service/internal/permission"
	pkgDatabase "terminal-terrace/wiki-service/pkg/database"
	"terminal-terrace/wiki-service/pkg/response"
)

type WikiHandler struct {
	wikiService      *WikiService
	historyPageLimit int
}

func NewWikiHandler(db *gorm.DB, redis *pkgDatabase.RedisClient, cfg config.WikiConfig) *WikiHandler {
	return &WikiHandler{
		wikiService:      NewWikiService(db, redis, cfg.DefaultLanguage),
		historyPageLimit: cfg.HistoryPageLimit,
	}
}

// respondError 业务错误原样下发，其余错误折叠为通用失败
func respondError(c *gin.Context, err error) {
	var be *response.BusinessError
	if errors.As(err, &be) {
		dto.ErrorResponse(c, be)
		return
	}
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage("操作失败"),
		response.WithError(err),
	))
}

// userRole 从上下文取全局角色，匿名为空串
func userRole(c *gin.Context) string {
	if role, exists := c.Get("user_role"); exists && role != nil {
		return role.(string)
	}
	return ""
}

// ListArticles 获取文章列表
// @Summary 获取文章列表
// @Description include_dead=true 时包含软删除文章，需要删除级权限
// @Tags Wiki
// @Accept json
// @Produce json
// @Param include_dead query bool false "是否包含软删除文章" default(false)
// @Success 200 {object} response.Response{data=dto.ArticleListResponse}
// @Router /wiki/articles [get]
func (h *WikiHandler) ListArticles(c *gin.Context) {
	includeDead := c.Query("include_dead") == "true" &&
		permission.CanViewDeleted(userRole(c))

	result, err := h.wikiService.ListArticles(includeDead)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// GetArticle 获取文章详情
// @Summary 获取文章详情，带 language 参数时返回对应翻译
// @Tags Wiki
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param language query string false "语言代码"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /wiki/articles/{id} [get]
func (h *WikiHandler) GetArticle(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	includeDead := permission.CanViewDeleted(userRole(c))

	if language := c.Query("language"); language != "" {
		result, err := h.wikiService.GetTranslation(uint(articleID), language, includeDead)
		if err != nil {
			respondError(c, err)
			return
		}
		dto.SuccessResponse(c, result)
		return
	}

	result, err := h.wikiService.GetArticle(uint(articleID), includeDead)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// GetAliases 获取文章别名列表
// @Summary 获取文章别名列表（升序）
// @Tags Wiki
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=[]string}
// @Router /wiki/articles/{id}/aliases [get]
func (h *WikiHandler) GetAliases(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	aliases, err := h.wikiService.GetAliases(uint(articleID))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, aliases)
}

// GetRevisions 获取修订历史
// @Summary 获取修订历史（按创建时间倒序，分页）
// @Tags Wiki
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param language query string false "语言代码，缺省为默认语言"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(50)
// @Success 200 {object} response.Response{data=dto.RevisionHistoryResponse}
// @Router /wiki/articles/{id}/revisions [get]
func (h *WikiHandler) GetRevisions(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.historyPageLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = h.historyPageLimit
	}
	if limit > 100 {
		limit = 100
	}

	result, err := h.wikiService.History(uint(articleID), c.Query("language"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// Create 创建文章或翻译
// @Summary 创建文章；同时带 language 和 article_id 时创建翻译
// @Tags Wiki
// @Accept json
// @Produce json
// @Param request body dto.CreateWikiRequest true "创建请求"
// @Success 200 {object} response.Response
// @Router /wiki/create [post]
func (h *WikiHandler) Create(c *gin.Context) {
	var req dto.CreateWikiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID, _ := c.Get("user_id")

	if req.Language != "" && req.ArticleID != nil {
		result, err := h.wikiService.CreateTranslation(req, userID.(uint))
		if err != nil {
			respondError(c, err)
			return
		}
		dto.SuccessResponse(c, result)
		return
	}

	result, err := h.wikiService.CreateArticle(req, userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// Modify 追加修订
// @Summary 编辑文章或翻译，追加一条修订并更新当前内容
// @Tags Wiki
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body dto.EditWikiRequest true "编辑请求"
// @Success 200 {object} response.Response{data=dto.RevisionResponse}
// @Router /wiki/modify/{id} [put]
func (h *WikiHandler) Modify(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	var req dto.EditWikiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID, _ := c.Get("user_id")

	result, err := h.wikiService.Edit(uint(articleID), req, userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}

// Delete 软删除文章
// @Summary 软删除文章（只置标记）
// @Tags Wiki
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response
// @Router /wiki/articles/{id} [delete]
func (h *WikiHandler) Delete(c *gin.Context) {
	articleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的文章ID"),
		))
		return
	}

	if err := h.wikiService.Delete(uint(articleID)); err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessResponse(c, nil)
}
