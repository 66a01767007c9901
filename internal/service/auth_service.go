package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	TokenRepo *repository.TokenRepository
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.TokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
		Cfg:       cfg,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) Register(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	_, err := s.UserRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.Role = model.RoleUser
	user.IsActive = true
	return s.UserRepo.Create(ctx, user)
}

// Login 校验邮箱和密码，返回 access/refresh 令牌对
func (s *AuthService) Login(ctx context.Context, email, password string) (*util.TokenPair, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, util.ErrInvalidCredentials
	}

	pair, err := util.GenerateTokenPair(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Log.Warn("更新最后登录时间失败", zap.Uint("userId", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	return pair, user, nil
}

// Refresh 用 refresh 令牌换取新的令牌对，旧的 refresh 令牌随即失效
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := s.parseActive(ctx, refreshToken, util.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrInvalidToken
	}

	// 并发刷新同一令牌时只有一个请求能成功
	first, err := s.TokenRepo.RevokeOnce(ctx, claims.ID, claims.RemainingTTL())
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, util.ErrTokenRevoked
	}

	return util.GenerateTokenPair(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime, s.Cfg.JWT.RefreshExpireTime)
}

// Logout 吊销当前 access 令牌；提供 refresh 令牌时一并吊销
func (s *AuthService) Logout(ctx context.Context, access *util.Claims, refreshToken string) error {
	if err := s.TokenRepo.Revoke(ctx, access.ID, access.RemainingTTL()); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}

	claims, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret)
	if err != nil {
		return err
	}
	if claims.TokenType != util.TokenTypeRefresh || claims.UserID != access.UserID {
		return util.ErrInvalidToken
	}
	return s.TokenRepo.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// Authenticate 解析 access 令牌，检查是否已被吊销以及用户是否仍可用
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*util.Claims, error) {
	claims, err := s.parseActive(ctx, accessToken, util.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrInvalidToken
	}
	claims.Role = user.Role
	return claims, nil
}

func (s *AuthService) parseActive(ctx context.Context, token, tokenType string) (*util.Claims, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, util.ErrInvalidToken
	}

	revoked, err := s.TokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, util.ErrTokenRevoked
	}
	return claims, nil
}
