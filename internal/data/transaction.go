package data

import (
	"context"

	"gorm.io/gorm"

	"Orion_Tube/internal/repository"
)

// UnitOfWork 事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行，并为这个函数提供能在事务中工作的 Repositories
	Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository
type TransactionalRepositories struct {
	VideoRepo   repository.VideoRepository
	CommentRepo repository.CommentRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db          *gorm.DB
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
}

// NewUnitOfWork 接收的是原始的、非事务的 repositories
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:          db,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
	}
}

// fn 返回error则回滚，返回nil则提交；Repo副本只在这一次事务内有效
func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactionalRepos := &TransactionalRepositories{
			VideoRepo:   u.videoRepo.WithTx(tx),
			CommentRepo: u.commentRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
