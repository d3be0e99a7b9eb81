package wiki

import (
	"errors"
	"fmt"

	"terminal-terrace/wiki-service/pkg/response"
)

// 领域错误统一用 BusinessError 构造，code 负责映射 HTTP 语义，
// message 面向调用方

// ErrAliasTaken 别名冲突，消息携带冲突键
func ErrAliasTaken(alias string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Conflict),
		response.WithErrorMessage(fmt.Sprintf("维基别名 %s 已被占用", alias)),
	)
}

// ErrInvalidLanguage 未知语言代码
func ErrInvalidLanguage(code string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(fmt.Sprintf("无效的语言代码 %s", code)),
	)
}

// ErrDefaultLanguageTranslation 默认语言不接受翻译，文章本体即该语言内容
func ErrDefaultLanguageTranslation(language string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(fmt.Sprintf("语言 %s 是默认语言，请直接编辑文章", language)),
	)
}

// ErrInvalidArticle 创建翻译/修订时文章外键悬空
func ErrInvalidArticle(articleID uint) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(fmt.Sprintf("文章 %d 不存在", articleID)),
	)
}

// ErrUnknownUser 编辑者外键悬空
func ErrUnknownUser(userID uint) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(fmt.Sprintf("用户 %d 不存在", userID)),
	)
}

// ErrArticleNotFound 直接查询未命中
func ErrArticleNotFound(articleID uint) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(fmt.Sprintf("文章 %d 不存在", articleID)),
	)
}

// ErrTranslationNotFound 翻译查询未命中
func ErrTranslationNotFound(articleID uint, language string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(fmt.Sprintf("文章 %d 没有 %s 翻译", articleID, language)),
	)
}

// ErrTranslationExists 同一 (article, language) 重复创建翻译
func ErrTranslationExists(articleID uint, language string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Conflict),
		response.WithErrorMessage(fmt.Sprintf("文章 %d 已存在 %s 翻译", articleID, language)),
	)
}

// ErrNoRevisions 该 (article, language) 尚无任何修订
func ErrNoRevisions(articleID uint, languageID uint) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(fmt.Sprintf("文章 %d 在语言 %d 下尚无修订记录", articleID, languageID)),
	)
}

// ErrorCode 提取业务错误码，非业务错误返回 Fail
func ErrorCode(err error) response.ResponseCode {
	var be *response.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return response.Fail
}
