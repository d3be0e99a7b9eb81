package wiki_test

import (
	"testing"

	"gorm.io/gorm"

	"terminal-terrace/wiki-service/internal/dto"
	"terminal-terrace/wiki-service/internal/model/user"
	modelwiki "terminal-terrace/wiki-service/internal/model/wiki"
	"terminal-terrace/wiki-service/internal/testutils"
	wikiPkg "terminal-terrace/wiki-service/internal/wiki"
	"terminal-terrace/wiki-service/pkg/response"
)

// setupWikiService 创建 WikiService 实例用于测试
// Redis 传 nil，缓存层退化为直读数据库
func setupWikiService(t *testing.T) (*wikiPkg.WikiService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	service := wikiPkg.NewWikiService(db, nil, "en")
	return service, db
}

// WikiTestFixture 共享测试数据结构
type WikiTestFixture struct {
	DB      *gorm.DB
	Service *wikiPkg.WikiService

	Editor      *user.User
	OtherEditor *user.User
	Article     *dto.ArticleResponse
}

// createWikiFixture 创建带一篇文章的测试fixture
func createWikiFixture(t *testing.T) *WikiTestFixture {
	service, db := setupWikiService(t)

	editor := testutils.CreateTestUser(db)
	otherEditor := testutils.CreateTestUser(db)

	art, err := service.CreateArticle(dto.CreateWikiRequest{
		Title:    "Fixture Article",
		Contents: "Fixture contents",
	}, editor.ID)
	if err != nil {
		t.Fatalf("Failed to create fixture article: %v", err)
	}

	return &WikiTestFixture{
		DB:          db,
		Service:     service,
		Editor:      editor,
		OtherEditor: otherEditor,
		Article:     art,
	}
}

func TestCreateArticle(t *testing.T) {
	service, db := setupWikiService(t)
	editor := testutils.CreateTestUser(db)

	art, err := service.CreateArticle(dto.CreateWikiRequest{
		Title:    "My First Wiki",
		Contents: "Hello world",
	}, editor.ID)
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if art.Revision != 1 {
		t.Errorf("新文章修订号应为 1, got %d", art.Revision)
	}
	if art.Title != "My First Wiki" {
		t.Errorf("标题不匹配: %q", art.Title)
	}
	if len(art.Aliases) != 1 || art.Aliases[0] != "myfirstwiki" {
		t.Errorf("别名应为 [myfirstwiki], got %v", art.Aliases)
	}
	if art.LastEditor == nil || art.LastEditor.ID != editor.ID {
		t.Errorf("编辑者视图缺失或不匹配: %+v", art.LastEditor)
	}

	// 首条修订应与反范式化内容一致
	latest, err := service.LatestRevision(art.ID, "")
	if err != nil {
		t.Fatalf("LatestRevision failed: %v", err)
	}
	if latest.RevisionID != 1 || latest.Title != art.Title || latest.Contents != art.Contents {
		t.Errorf("首条修订与文章当前内容不一致: %+v", latest)
	}
}

func TestCreateArticle_UnknownUser(t *testing.T) {
	service, _ := setupWikiService(t)

	_, err := service.CreateArticle(dto.CreateWikiRequest{
		Title:    "Orphan",
		Contents: "x",
	}, 99999)
	if err == nil {
		t.Fatal("未知用户创建文章应失败")
	}
	if wikiPkg.ErrorCode(err) != response.InvalidParameter {
		t.Errorf("错误码应为 InvalidParameter, got %d", wikiPkg.ErrorCode(err))
	}
}

// 两个标题规范化后相同即视为冲突，且冲突时不留任何部分写入
func TestCreateArticle_AliasConflict(t *testing.T) {
	service, db := setupWikiService(t)
	editor := testutils.CreateTestUser(db)

	if _, err := service.CreateArticle(dto.CreateWikiRequest{
		Title:    "Wiki 1",
		Contents: "first",
	}, editor.ID); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	_, err := service.CreateArticle(dto.CreateWikiRequest{
		Title:    "wiki      1",
		Contents: "second",
	}, editor.ID)
	if err == nil {
		t.Fatal("规范化后同键的标题应冲突")
	}
	if wikiPkg.ErrorCode(err) != response.Conflict {
		t.Errorf("错误码应为 Conflict, got %d", wikiPkg.ErrorCode(err))
	}

	// 冲突方不应留下文章行或修订行
	var articleCount, revisionCount int64
	db.Model(&modelwiki.Article{}).Count(&articleCount)
	db.Model(&modelwiki.Revision{}).Count(&revisionCount)
	if articleCount != 1 {
		t.Errorf("应只有 1 篇文章, got %d", articleCount)
	}
	if revisionCount != 1 {
		t.Errorf("应只有 1 条修订, got %d", revisionCount)
	}
}

// 编辑追加修订：修订号从 1 连续递增，当前内容始终等于最新修订
func TestEdit_AppendsRevisions(t *testing.T) {
	f := createWikiFixture(t)

	if _, err := f.Service.Edit(f.Article.ID, dto.EditWikiRequest{
		Title:    "Fixture Article v2",
		Contents: "second pass",
	}, f.Editor.ID); err != nil {
		t.Fatalf("第一次编辑失败: %v", err)
	}

	rev, err := f.Service.Edit(f.Article.ID, dto.EditWikiRequest{
		Title:    "Fixture Article v3",
		Contents: "third pass",
	}, f.OtherEditor.ID)
	if err != nil {
		t.Fatalf("第二次编辑失败: %v", err)
	}

	if rev.RevisionID != 3 {
		t.Errorf("第三条修订号应为 3, got %d", rev.RevisionID)
	}
	if rev.Editor == nil || rev.Editor.ID != f.OtherEditor.ID {
		t.Errorf("修订编辑者不匹配: %+v", rev.Editor)
	}

	art, err := f.Service.GetArticle(f.Article.ID, false)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if art.Revision != 3 || art.Title != "Fixture Article v3" || art.Contents != "third pass" {
		t.Errorf("反范式化内容未跟上最新修订: %+v", art)
	}

	latest, err := f.Service.LatestRevision(f.Article.ID, "")
	if err != nil {
		t.Fatalf("LatestRevision failed: %v", err)
	}
	if latest.Title != art.Title || latest.Contents != art.Contents {
		t.Errorf("最新修订与当前内容不一致")
	}

	// 标题编辑不回写别名，仍然只有创建时那一个
	aliases, err := f.Service.GetAliases(f.Article.ID)
	if err != nil {
		t.Fatalf("GetAliases failed: %v", err)
	}
	if len(aliases) != 1 || aliases[0] != "fixturearticle" {
		t.Errorf("别名不应随标题编辑漂移: %v", aliases)
	}
}

func TestEdit_InvalidLanguage(t *testing.T) {
	f := createWikiFixture(t)

	_, err := f.Service.Edit(f.Article.ID, dto.EditWikiRequest{
		Title:    "x",
		Contents: "y",
		Language: "klingon",
	}, f.Editor.ID)
	if err == nil {
		t.Fatal("未知语言编辑应失败")
	}
	if wikiPkg.ErrorCode(err) != response.InvalidParameter {
		t.Errorf("错误码应为 InvalidParameter, got %d", wikiPkg.ErrorCode(err))
	}
}

func TestCreateTranslation(t *testing.T) {
	f := createWikiFixture(t)

	tr, err := f.Service.CreateTranslation(dto.CreateWikiRequest{
		Title:     "Artículo de Prueba",
		Contents:  "contenido",
		Language:  "es",
		ArticleID: &f.Article.ID,
	}, f.OtherEditor.ID)
	if err != nil {
		t.Fatalf("CreateTranslation failed: %v", err)
	}

	if tr.Language != "es" {
		t.Errorf("语言应为 es, got %q", tr.Language)
	}
	if tr.Revision != 1 {
		t.Errorf("翻译首条修订号应为 1, got %d", tr.Revision)
	}

	// 翻译修订账本与文章本体的账本互不干扰
	latest, err := f.Service.LatestRevision(f.Article.ID, "es")
	if err != nil {
		t.Fatalf("LatestRevision(es) failed: %v", err)
	}
	if latest.RevisionID != 1 {
		t.Errorf("翻译首条修订号应为 1, got %d", latest.RevisionID)
	}

	// 翻译标题的别名也指向同一篇文章
	aliases, err := f.Service.GetAliases(f.Article.ID)
	if err != nil {
		t.Fatalf("GetAliases failed: %v", err)
	}
	if len(aliases) != 2 {
		t.Errorf("应有文章和翻译两个别名, got %v", aliases)
	}

	// 同一 (article, language) 重复创建应冲突
	_, err = f.Service.CreateTranslation(dto.CreateWikiRequest{
		Title:     "Otro Título",
		Contents:  "otra cosa",
		Language:  "es",
		ArticleID: &f.Article.ID,
	}, f.OtherEditor.ID)
	if err == nil {
		t.Fatal("重复翻译应冲突")
	}
	if wikiPkg.ErrorCode(err) != response.Conflict {
		t.Errorf("错误码应为 Conflict, got %d", wikiPkg.ErrorCode(err))
	}
}

// 翻译标题撞上已有别名时只跳过别名注册，翻译本身照常落库
func TestCreateTranslation_AliasBestEffort(t *testing.T) {
	f := createWikiFixture(t)

	tr, err := f.Service.CreateTranslation(dto.CreateWikiRequest{
		Title:     "FIXTURE article", // 规范化后与文章别名同键
		Contents:  "traduction",
		Language:  "fr",
		ArticleID: &f.Article.ID,
	}, f.Editor.ID)
	if err != nil {
		t.Fatalf("别名冲突不应让翻译创建失败: %v", err)
	}
	if tr.Revision != 1 {
		t.Errorf("翻译首条修订号应为 1, got %d", tr.Revision)
	}

	aliases, err := f.Service.GetAliases(f.Article.ID)
	if err != nil {
		t.Fatalf("GetAliases failed: %v", err)
	}
	if len(aliases) != 1 {
		t.Errorf("冲突别名不应重复注册: %v", aliases)
	}
}

// 默认语言的翻译会往文章本体的修订账本里追加修订，
// 让文章当前内容与最新修订脱节，必须整体拒绝
func TestCreateTranslation_DefaultLanguageRejected(t *testing.T) {
	f := createWikiFixture(t)

	for _, code := range []string{"en", "EN"} {
		_, err := f.Service.CreateTranslation(dto.CreateWikiRequest{
			Title:     "Hijacked Title",
			Contents:  "x",
			Language:  code,
			ArticleID: &f.Article.ID,
		}, f.Editor.ID)
		if err == nil {
			t.Fatalf("默认语言 %q 创建翻译应被拒绝", code)
		}
		if wikiPkg.ErrorCode(err) != response.InvalidParameter {
			t.Errorf("错误码应为 InvalidParameter, got %d", wikiPkg.ErrorCode(err))
		}
	}

	// 文章本体账本未被污染：最新修订仍是创建时那一条
	latest, err := f.Service.LatestRevision(f.Article.ID, "en")
	if err != nil {
		t.Fatalf("LatestRevision failed: %v", err)
	}
	if latest.RevisionID != 1 || latest.Title != f.Article.Title {
		t.Errorf("文章账本被翻译污染: %+v", latest)
	}

	art, err := f.Service.GetArticle(f.Article.ID, false)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if art.Title != latest.Title || art.Contents != latest.Contents {
		t.Errorf("文章当前内容与最新修订脱节: article=%q latest=%q", art.Title, latest.Title)
	}

	// 也没有落下翻译行
	if _, err := f.Service.GetTranslation(f.Article.ID, "en", true); err == nil {
		t.Fatal("默认语言下不应存在翻译行")
	} else if wikiPkg.ErrorCode(err) != response.NotFound {
		t.Errorf("错误码应为 NotFound, got %d", wikiPkg.ErrorCode(err))
	}
}

func TestCreateTranslation_InvalidArticle(t *testing.T) {
	service, db := setupWikiService(t)
	editor := testutils.CreateTestUser(db)

	missing := uint(99999)
	_, err := service.CreateTranslation(dto.CreateWikiRequest{
		Title:     "x",
		Contents:  "y",
		Language:  "es",
		ArticleID: &missing,
	}, editor.ID)
	if err == nil {
		t.Fatal("悬空文章外键应失败")
	}
	if wikiPkg.ErrorCode(err) != response.InvalidParameter {
		t.Errorf("错误码应为 InvalidParameter, got %d", wikiPkg.ErrorCode(err))
	}
}

func TestGetTranslation_NotFound(t *testing.T) {
	f := createWikiFixture(t)

	_, err := f.Service.GetTranslation(f.Article.ID, "ja", false)
	if err == nil {
		t.Fatal("不存在的翻译应返回错误")
	}
	if wikiPkg.ErrorCode(err) != response.NotFound {
		t.Errorf("错误码应为 NotFound, got %d", wikiPkg.ErrorCode(err))
	}
}

// 编辑翻译走独立的修订账本
func TestEdit_Translation(t *testing.T) {
	f := createWikiFixture(t)

	if _, err := f.Service.CreateTranslation(dto.CreateWikiRequest{
		Title:     "Traducción",
		Contents:  "v1",
		Language:  "es",
		ArticleID: &f.Article.ID,
	}, f.Editor.ID); err != nil {
		t.Fatalf("创建翻译失败: %v", err)
	}

	rev, err := f.Service.Edit(f.Article.ID, dto.EditWikiRequest{
		Title:    "Traducción v2",
		Contents: "v2",
		Language: "es",
	}, f.OtherEditor.ID)
	if err != nil {
		t.Fatalf("编辑翻译失败: %v", err)
	}
	if rev.RevisionID != 2 {
		t.Errorf("翻译第二条修订号应为 2, got %d", rev.RevisionID)
	}

	tr, err := f.Service.GetTranslation(f.Article.ID, "es", false)
	if err != nil {
		t.Fatalf("GetTranslation failed: %v", err)
	}
	if tr.Revision != 2 || tr.Contents != "v2" {
		t.Errorf("翻译反范式化内容未更新: %+v", tr)
	}

	// 文章本体的账本不受翻译编辑影响
	art, err := f.Service.GetArticle(f.Article.ID, false)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if art.Revision != 1 {
		t.Errorf("文章本体修订号应保持 1, got %d", art.Revision)
	}
}

func TestListArticles_IncludeDead(t *testing.T) {
	f := createWikiFixture(t)

	second, err := f.Service.CreateArticle(dto.CreateWikiRequest{
		Title:    "Second Article",
		Contents: "more",
	}, f.Editor.ID)
	if err != nil {
		t.Fatalf("创建第二篇文章失败: %v", err)
	}

	if err := f.Service.Delete(second.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	live, err := f.Service.ListArticles(false)
	if err != nil {
		t.Fatalf("ListArticles(live) failed: %v", err)
	}
	if live.Total != 1 {
		t.Errorf("存活列表应有 1 篇, got %d", live.Total)
	}

	all, err := f.Service.ListArticles(true)
	if err != nil {
		t.Fatalf("ListArticles(all) failed: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("全量列表应有 2 篇, got %d", all.Total)
	}
}

func TestDelete_SoftDelete(t *testing.T) {
	f := createWikiFixture(t)

	if err := f.Service.Delete(f.Article.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// 普通视角按不存在处理
	if _, err := f.Service.GetArticle(f.Article.ID, false); err == nil {
		t.Fatal("软删除文章对普通视角应不可见")
	} else if wikiPkg.ErrorCode(err) != response.NotFound {
		t.Errorf("错误码应为 NotFound, got %d", wikiPkg.ErrorCode(err))
	}

	// 删除视角仍可见，带删除标记
	art, err := f.Service.GetArticle(f.Article.ID, true)
	if err != nil {
		t.Fatalf("GetArticle(includeDead) failed: %v", err)
	}
	if !art.Deleted {
		t.Error("删除标记应为 true")
	}

	// 软删除只隐藏不冻结，编辑仍然追加修订
	rev, err := f.Service.Edit(f.Article.ID, dto.EditWikiRequest{
		Title:    "Edited After Delete",
		Contents: "still editable",
	}, f.Editor.ID)
	if err != nil {
		t.Fatalf("软删除文章的编辑失败: %v", err)
	}
	if rev.RevisionID != 2 {
		t.Errorf("修订号应为 2, got %d", rev.RevisionID)
	}

	// 删除不存在的文章
	if err := f.Service.Delete(99999); err == nil {
		t.Fatal("删除不存在的文章应失败")
	} else if wikiPkg.ErrorCode(err) != response.NotFound {
		t.Errorf("错误码应为 NotFound, got %d", wikiPkg.ErrorCode(err))
	}
}

func TestHistory_Pagination(t *testing.T) {
	f := createWikiFixture(t)

	// 加上创建时的首条修订，共 5 条
	for i := 0; i < 4; i++ {
		if _, err := f.Service.Edit(f.Article.ID, dto.EditWikiRequest{
			Title:    "Fixture Article",
			Contents: "pass",
		}, f.Editor.ID); err != nil {
			t.Fatalf("第 %d 次编辑失败: %v", i+1, err)
		}
	}

	page1, err := f.Service.History(f.Article.ID, "", 1, 2)
	if err != nil {
		t.Fatalf("History(page=1) failed: %v", err)
	}
	if len(page1.Revisions) != 2 {
		t.Errorf("首页应有 2 条, got %d", len(page1.Revisions))
	}
	if page1.Page != 1 || page1.Limit != 2 {
		t.Errorf("分页元数据不匹配: %+v", page1)
	}

	page3, err := f.Service.History(f.Article.ID, "", 3, 2)
	if err != nil {
		t.Fatalf("History(page=3) failed: %v", err)
	}
	if len(page3.Revisions) != 1 {
		t.Errorf("末页应有 1 条, got %d", len(page3.Revisions))
	}

	// 不存在的文章
	if _, err := f.Service.History(99999, "", 1, 10); err == nil {
		t.Fatal("不存在文章的历史查询应失败")
	}
}

func TestLatestRevision_NoRevisions(t *testing.T) {
	f := createWikiFixture(t)

	// 文章存在但该语言下没有任何修订
	_, err := f.Service.LatestRevision(f.Article.ID, "de")
	if err == nil {
		t.Fatal("无修订的语言应返回错误")
	}
	if wikiPkg.ErrorCode(err) != response.NotFound {
		t.Errorf("错误码应为 NotFound, got %d", wikiPkg.ErrorCode(err))
	}
}

func TestGetAliases_Order(t *testing.T) {
	f := createWikiFixture(t)

	// 通过翻译再挂两个别名
	for _, pair := range []struct{ lang, title string }{
		{"es", "Zeta Título"},
		{"fr", "Alpha Titre"},
	} {
		if _, err := f.Service.CreateTranslation(dto.CreateWikiRequest{
			Title:     pair.title,
			Contents:  "x",
			Language:  pair.lang,
			ArticleID: &f.Article.ID,
		}, f.Editor.ID); err != nil {
			t.Fatalf("创建 %s 翻译失败: %v", pair.lang, err)
		}
	}

	aliases, err := f.Service.GetAliases(f.Article.ID)
	if err != nil {
		t.Fatalf("GetAliases failed: %v", err)
	}
	want := []string{"alphatitre", "fixturearticle", "zetatítulo"}
	if len(aliases) != len(want) {
		t.Fatalf("别名数量不匹配: %v", aliases)
	}
	for i := range want {
		if aliases[i] != want[i] {
			t.Errorf("别名顺序应为字典序升序: got %v, want %v", aliases, want)
			break
		}
	}
}
