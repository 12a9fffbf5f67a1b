package service

import (
	"context"

	"Orion_Tube/internal/model"
	"Orion_Tube/internal/repository"
	"Orion_Tube/pkg/errno"
)

type TweetService interface {
	CreateTweet(ctx context.Context, actorID uint64, content string) (*model.Tweet, error)
	ListUserTweets(ctx context.Context, userID, viewerID uint64) ([]model.TweetView, error)
	UpdateTweet(ctx context.Context, actorID, tweetID uint64, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, actorID, tweetID uint64) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	cascade   *Cascade
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository, cascade *Cascade) TweetService {
	return &tweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		cascade:   cascade,
	}
}

func (s *tweetService) CreateTweet(ctx context.Context, actorID uint64, content string) (*model.Tweet, error) {
	if err := requireViewer(actorID); err != nil {
		return nil, err
	}
	content, err := requireText(content, "动态内容")
	if err != nil {
		return nil, err
	}
	tweet := &model.Tweet{OwnerID: actorID, Content: content}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, storeError(err, "用户不存在", "create tweet")
	}
	return tweet, nil
}

// 某个用户的全部动态，最新的在前
func (s *tweetService) ListUserTweets(ctx context.Context, userID, viewerID uint64) ([]model.TweetView, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "find user")
	}
	if !exists {
		return nil, errno.NewNotFound("用户不存在")
	}
	tweets, err := s.tweetRepo.ListByOwner(ctx, userID, viewerID)
	if err != nil {
		return nil, storeError(err, "用户不存在", "list tweets")
	}
	return tweets, nil
}

func (s *tweetService) UpdateTweet(ctx context.Context, actorID, tweetID uint64, content string) (*model.Tweet, error) {
	content, err := requireText(content, "动态内容")
	if err != nil {
		return nil, err
	}
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return nil, storeError(err, "动态不存在", "find tweet")
	}
	if err := authorize(tweet, actorID, "修改该动态"); err != nil {
		return nil, err
	}
	if err := s.tweetRepo.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, storeError(err, "动态不存在", "update tweet")
	}
	updated, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return nil, storeError(err, "动态不存在", "find tweet")
	}
	return updated, nil
}

func (s *tweetService) DeleteTweet(ctx context.Context, actorID, tweetID uint64) error {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		return storeError(err, "动态不存在", "find tweet")
	}
	if err := authorize(tweet, actorID, "删除该动态"); err != nil {
		return err
	}
	return s.cascade.DeleteTweet(ctx, tweet)
}
