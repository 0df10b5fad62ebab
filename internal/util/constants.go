package util

import "time"

const (
	// EditableWindow 文章创建后允许继续追加回答/评论的时间窗口
	EditableWindow = 180 * 24 * time.Hour

	// ClickDedupTTL 同一用户/IP 重复浏览去重时长
	ClickDedupTTL = 10 * time.Minute

	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100

	// 积分奖励，只在发文和被采纳时发放
	PointPostArticle = 10
	PointPicked      = 50
)

// 点赞内容类型
const (
	ContentArticle = "article"
	ContentAnswer  = "answer"
	ContentComment = "comment"
)
