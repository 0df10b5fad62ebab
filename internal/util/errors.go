package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found or unverified")
	ErrArticleNotFound  = errors.New("article not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrUnableToAnswer   = errors.New("unable to answer this article")
	ErrNotEditable      = errors.New("article is no longer editable")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrWrongCredentials = errors.New("invalid email or password")
	ErrPermissionDenied = errors.New("permission denied")
	ErrOnlyQuestionPick = errors.New("only question articles can pick an answer")
)
