package wiki_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/wiki-service/internal/testutils"
	wikiPkg "terminal-terrace/wiki-service/internal/wiki"
	"terminal-terrace/wiki-service/pkg/response"
)

func TestLanguageResolve(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := wikiPkg.NewLanguageRepository(db)

	// 种子语言可按代码解析，不区分大小写
	for _, code := range []string{"en", "EN", "En"} {
		lang, err := repo.Resolve(code, true)
		require.NoError(t, err, "Resolve(%q)", code)
		assert.Equal(t, "en", lang.Language, "Resolve(%q) 应归一到 en", code)
	}

	// strict 模式未命中报错
	_, err := repo.Resolve("xx", true)
	require.Error(t, err, "未知语言 strict 解析应失败")
	assert.Equal(t, response.InvalidParameter, wikiPkg.ErrorCode(err))

	// 非 strict 模式未命中静默返回 nil
	lang, err := repo.Resolve("xx", false)
	require.NoError(t, err)
	assert.Nil(t, lang)
}

func TestLanguageGetByID(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := wikiPkg.NewLanguageRepository(db)

	en, err := repo.Resolve("en", true)
	require.NoError(t, err)

	byID, err := repo.GetByID(en.ID)
	require.NoError(t, err)
	assert.Equal(t, en.Language, byID.Language)
}
