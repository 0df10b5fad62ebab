package service

import (
	"qna_community_backend/internal/model"
	"qna_community_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEditableStatus(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		status model.ArticleStatus
		age    time.Duration
		want   bool
	}{
		{"发布状态且在窗口内", model.StatusPosting, time.Hour, true},
		{"发布状态但超出窗口", model.StatusPosting, util.EditableWindow + time.Hour, false},
		{"已删除", model.StatusRemoved, time.Hour, false},
		{"已屏蔽", model.StatusBlocked, time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := &model.Article{Status: tt.status}
			article.CreatedAt = time.Now().Add(-tt.age)
			assert.Equal(t, tt.want, env.CommentService.IsEditableStatus(article))
		})
	}
}

func TestCreateComment(t *testing.T) {
	t.Run("成功评论", func(t *testing.T) {
		env := newTestEnv(t)
		author := createUser(t, env.DB, "author@example.com")
		commenter := createUser(t, env.DB, "commenter@example.com")
		article := createArticle(t, env.DB, author, model.CategoryFree)

		resp, err := env.CommentService.CreateComment(article.ID, commenter.ID, CommentRequest{Content: "nice post"})
		require.NoError(t, err)
		assert.Equal(t, "nice post", resp.Content)
		assert.Equal(t, commenter.ID, resp.Author.ID)
		assert.Equal(t, article.ID, resp.ArticleID)
	})

	t.Run("超出追加窗口拒绝评论", func(t *testing.T) {
		env := newTestEnv(t)
		author := createUser(t, env.DB, "author@example.com")
		commenter := createUser(t, env.DB, "commenter@example.com")
		article := createArticle(t, env.DB, author, model.CategoryFree)
		backdateArticle(t, env.DB, article, util.EditableWindow+24*time.Hour)

		_, err := env.CommentService.CreateComment(article.ID, commenter.ID, CommentRequest{Content: "too late"})
		assert.ErrorIs(t, err, util.ErrNotEditable)
	})

	t.Run("文章不存在", func(t *testing.T) {
		env := newTestEnv(t)
		commenter := createUser(t, env.DB, "commenter@example.com")

		_, err := env.CommentService.CreateComment(9999, commenter.ID, CommentRequest{Content: "x"})
		assert.ErrorIs(t, err, util.ErrArticleNotFound)
	})

	t.Run("用户不存在", func(t *testing.T) {
		env := newTestEnv(t)
		author := createUser(t, env.DB, "author@example.com")
		article := createArticle(t, env.DB, author, model.CategoryFree)

		_, err := env.CommentService.CreateComment(article.ID, 9999, CommentRequest{Content: "x"})
		assert.ErrorIs(t, err, util.ErrUserNotFound)
	})
}

func TestGetComments(t *testing.T) {
	env := newTestEnv(t)
	author := createUser(t, env.DB, "author@example.com")
	commenter := createUser(t, env.DB, "commenter@example.com")
	article := createArticle(t, env.DB, author, model.CategoryFree)

	for _, content := range []string{"first", "second"} {
		_, err := env.CommentService.CreateComment(article.ID, commenter.ID, CommentRequest{Content: content})
		require.NoError(t, err)
	}

	comments, err := env.CommentService.GetComments(article.ID, 0)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}

func TestDeleteComment(t *testing.T) {
	t.Run("作者本人可以删除", func(t *testing.T) {
		env := newTestEnv(t)
		author := createUser(t, env.DB, "author@example.com")
		commenter := createUser(t, env.DB, "commenter@example.com")
		article := createArticle(t, env.DB, author, model.CategoryFree)

		resp, err := env.CommentService.CreateComment(article.ID, commenter.ID, CommentRequest{Content: "x"})
		require.NoError(t, err)

		require.NoError(t, env.CommentService.DeleteComment(resp.ID, commenter.ID, model.RoleUser))

		comments, err := env.CommentService.GetComments(article.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("他人不能删除", func(t *testing.T) {
		env := newTestEnv(t)
		author := createUser(t, env.DB, "author@example.com")
		commenter := createUser(t, env.DB, "commenter@example.com")
		stranger := createUser(t, env.DB, "stranger@example.com")
		article := createArticle(t, env.DB, author, model.CategoryFree)

		resp, err := env.CommentService.CreateComment(article.ID, commenter.ID, CommentRequest{Content: "x"})
		require.NoError(t, err)

		err = env.CommentService.DeleteComment(resp.ID, stranger.ID, model.RoleUser)
		assert.ErrorIs(t, err, util.ErrPermissionDenied)
	})
}
