package queue

import (
	"github.com/jordibrook/marketing-api/internal/repository"
	"github.com/jordibrook/marketing-api/internal/service"
)

type Queue struct {
	pr repository.PostRepository
	ac repository.SocialAccountRepository
	ig service.InstagramService
}

func NewQueue(
	pr repository.PostRepository,
	ac repository.SocialAccountRepository,
	ig service.InstagramService) *Queue {
	return &Queue{
		pr: pr,
		ac: ac,
		ig: ig,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
