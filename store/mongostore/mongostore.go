// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pollbox/pollbox/poll"
	"github.com/pollbox/pollbox/store"
)

const databaseName = "pollbox"

// Store persists polls and users in MongoDB. Polls live as single documents
// with embedded options and votes; a version field backs the conditional
// replace in UpdatePoll.
type Store struct {
	client *mongo.Client
	polls  *mongo.Collection
	users  *mongo.Collection
}

// Dial connects, verifies the connection and ensures indexes.
func Dial(ctx context.Context, url string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(databaseName)
	s := &Store{
		client: client,
		polls:  db.Collection("polls"),
		users:  db.Collection("users"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = s.polls.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create poll index: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Document shapes. Voter identity is flattened; an empty voter_id marks an
// anonymous vote.

type optionDoc struct {
	ID   string `bson:"id"`
	Text string `bson:"text"`
}

type voteDoc struct {
	OptionID  string    `bson:"option_id"`
	At        time.Time `bson:"at"`
	VoterID   string    `bson:"voter_id"`
	VoterName string    `bson:"voter_name"`
}

type pollDoc struct {
	ID            string      `bson:"_id"`
	Title         string      `bson:"title"`
	Description   string      `bson:"description"`
	ImageURL      string      `bson:"image_url"`
	AllowMultiple bool        `bson:"allow_multiple"`
	CreatorID     string      `bson:"creator_id"`
	CreatorName   string      `bson:"creator_name"`
	CreatedAt     time.Time   `bson:"created_at"`
	Options       []optionDoc `bson:"options"`
	Votes         []voteDoc   `bson:"votes"`
	Version       int64       `bson:"version"`
}

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password_hash"`
	AvatarURL    string    `bson:"avatar_url"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toPollDoc(p poll.Poll, version int64) pollDoc {
	doc := pollDoc{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		AllowMultiple: p.AllowMultiple,
		CreatorID:     p.Creator.ID,
		CreatorName:   p.Creator.Username,
		CreatedAt:     p.CreatedAt,
		Options:       make([]optionDoc, 0, len(p.Options)),
		Votes:         make([]voteDoc, 0, len(p.Votes)),
		Version:       version,
	}
	for _, o := range p.Options {
		doc.Options = append(doc.Options, optionDoc(o))
	}
	for _, v := range p.Votes {
		doc.Votes = append(doc.Votes, voteDoc{
			OptionID:  v.OptionID,
			At:        v.At,
			VoterID:   v.By.ID,
			VoterName: v.By.Username,
		})
	}
	return doc
}

func (d pollDoc) toPoll() poll.Poll {
	p := poll.Poll{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		ImageURL:      d.ImageURL,
		AllowMultiple: d.AllowMultiple,
		Creator:       poll.Voter{ID: d.CreatorID, Username: d.CreatorName},
		CreatedAt:     d.CreatedAt,
		Options:       make([]poll.Option, 0, len(d.Options)),
		Votes:         make([]poll.Vote, 0, len(d.Votes)),
	}
	for _, o := range d.Options {
		p.Options = append(p.Options, poll.Option(o))
	}
	for _, v := range d.Votes {
		p.Votes = append(p.Votes, poll.Vote{
			OptionID: v.OptionID,
			At:       v.At,
			By:       poll.Voter{ID: v.VoterID, Username: v.VoterName},
		})
	}
	return p
}

func (s *Store) CreatePoll(ctx context.Context, p poll.Poll) error {
	_, err := s.polls.InsertOne(ctx, toPollDoc(p, 0))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert poll: %w", err)
	}
	return nil
}

func (s *Store) GetPoll(ctx context.Context, id string) (poll.Poll, error) {
	var doc pollDoc
	err := s.polls.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return poll.Poll{}, store.ErrNotFound
	}
	if err != nil {
		return poll.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return doc.toPoll(), nil
}

func (s *Store) ListPolls(ctx context.Context) ([]poll.Poll, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	cursor, err := s.polls.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer cursor.Close(ctx)

	polls := []poll.Poll{}
	for cursor.Next(ctx) {
		var doc pollDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode poll: %w", err)
		}
		polls = append(polls, doc.toPoll())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return polls, nil
}

const maxUpdateRetries = 5

// UpdatePoll runs a read-mutate-conditional-replace cycle. The replace is
// filtered on both id and version, so a concurrent writer invalidates this
// attempt and the loop retries against fresh state.
func (s *Store) UpdatePoll(ctx context.Context, id string, mutate func(*poll.Poll) error) (poll.Poll, error) {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		var doc pollDoc
		err := s.polls.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return poll.Poll{}, store.ErrNotFound
		}
		if err != nil {
			return poll.Poll{}, fmt.Errorf("failed to query poll: %w", err)
		}

		p := doc.toPoll()
		if err := mutate(&p); err != nil {
			return poll.Poll{}, err
		}

		res, err := s.polls.ReplaceOne(ctx,
			bson.M{"_id": id, "version": doc.Version},
			toPollDoc(p, doc.Version+1),
		)
		if err != nil {
			return poll.Poll{}, fmt.Errorf("failed to replace poll: %w", err)
		}
		if res.MatchedCount == 1 {
			return p, nil
		}
		// Lost the revision race; reload and retry.
	}
	return poll.Poll{}, store.ErrConflict
}

func (s *Store) DeletePoll(ctx context.Context, id string) error {
	res, err := s.polls.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u store.User) error {
	_, err := s.users.InsertOne(ctx, userDoc{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (store.User, error) {
	return s.getUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (store.User, error) {
	u, err := s.getUser(ctx, bson.M{"email": strings.ToLower(login)})
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return store.User{}, err
	}
	return s.getUser(ctx, bson.M{"username": login})
}

func (s *Store) getUser(ctx context.Context, filter bson.M) (store.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.User{}, store.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return store.User{
		ID:           doc.ID,
		Email:        doc.Email,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		AvatarURL:    doc.AvatarURL,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
