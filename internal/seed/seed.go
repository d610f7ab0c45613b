// Package seed fills a database with demo users, groups, posts and interactions.
// It is meant for development only.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
)

// Password is shared by every seeded account.
const Password = "password123"

type Options struct {
	Users    int
	Groups   int
	Posts    int
	Comments int // per post, at most
	Seed     int64
}

// Result counts what was created.
type Result struct {
	Users    []*models.User
	Groups   []*models.Group
	Posts    int
	Comments int
	Follows  int
	Likes    int
}

type Seeder struct {
	svc *services.Services
}

func New(svc *services.Services) *Seeder {
	return &Seeder{svc: svc}
}

// Run creates the requested amount of data through the regular services,
// so validation, cache invalidation and metrics apply as in production.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Seed != 0 {
		gofakeit.Seed(opts.Seed)
	}
	res := &Result{}

	for i := 0; len(res.Users) < opts.Users; i++ {
		user, err := s.svc.Users.Register(ctx, services.SignupInput{
			Username:  fmt.Sprintf("%s%d", slugify(strings.ToLower(gofakeit.FirstName())), i),
			Email:     gofakeit.Email(),
			Password:  Password,
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		})
		if err != nil {
			return res, fmt.Errorf("seed user: %w", err)
		}
		res.Users = append(res.Users, user)
	}
	if len(res.Users) == 0 {
		return res, nil
	}

	for i := 0; i < opts.Groups; i++ {
		noun := gofakeit.Noun()
		title := strings.ToUpper(noun[:1]) + noun[1:] + " lovers"
		group, err := s.svc.Groups.Create(ctx, title, fmt.Sprintf("%s-%d", slugify(strings.ToLower(noun)), i), gofakeit.Sentence(12))
		if err != nil {
			return res, fmt.Errorf("seed group: %w", err)
		}
		res.Groups = append(res.Groups, group)
	}

	for i := 0; i < opts.Posts; i++ {
		author := res.Users[rand.IntN(len(res.Users))]
		in := services.PostInput{Text: gofakeit.Paragraph(2, 3, 12, "\n\n")}
		// roughly two posts in three belong to a group
		if len(res.Groups) > 0 && rand.IntN(3) > 0 {
			in.GroupID = &res.Groups[rand.IntN(len(res.Groups))].ID
		}
		post, err := s.svc.Posts.Create(ctx, author, in)
		if err != nil {
			return res, fmt.Errorf("seed post: %w", err)
		}
		res.Posts++

		for j := 0; j < rand.IntN(opts.Comments+1); j++ {
			commenter := res.Users[rand.IntN(len(res.Users))]
			if _, err := s.svc.Comments.Create(ctx, post.ID, commenter, gofakeit.Sentence(10)); err != nil {
				return res, fmt.Errorf("seed comment: %w", err)
			}
			res.Comments++
		}
		for _, u := range res.Users {
			if rand.IntN(4) != 0 {
				continue
			}
			if _, err := s.svc.Likes.AddLike(ctx, post.ID, u.ID); err != nil {
				return res, fmt.Errorf("seed like: %w", err)
			}
			res.Likes++
		}
	}

	for _, u := range res.Users {
		for _, author := range res.Users {
			if rand.IntN(3) != 0 {
				continue
			}
			_, err := s.svc.Follows.Follow(ctx, u, author.Username)
			if apperr.Is(err, apperr.KindConflict) {
				continue
			}
			if err != nil {
				return res, fmt.Errorf("seed follow: %w", err)
			}
			res.Follows++
		}
	}

	logger.L().Info("seed completed",
		zap.Int("users", len(res.Users)), zap.Int("groups", len(res.Groups)), zap.Int("posts", res.Posts),
		zap.Int("comments", res.Comments), zap.Int("likes", res.Likes), zap.Int("follows", res.Follows))
	return res, nil
}

func slugify(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, s)
}
