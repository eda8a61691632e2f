// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/statementdb-go/internal/store"
	"github.com/olegiv/statementdb-go/internal/translation"
)

// TopicService manages topics. Headline and description are translatable
// references.
type TopicService struct {
	queries      *store.Queries
	translations *translation.Store
	logger       *slog.Logger
}

// NewTopicService creates a new TopicService.
func NewTopicService(db *sql.DB, translations *translation.Store, logger *slog.Logger) *TopicService {
	return &TopicService{
		queries:      store.New(db),
		translations: translations,
		logger:       logger,
	}
}

// Create adds a topic with headline and description in the given language.
func (s *TopicService) Create(ctx context.Context, language, headline, description string) (store.Topic, error) {
	headlineID, err := s.translations.CreateWithTranslation(ctx, language, headline)
	if err != nil {
		return store.Topic{}, err
	}
	descriptionID, err := s.translations.CreateWithTranslation(ctx, language, description)
	if err != nil {
		return store.Topic{}, err
	}

	topic, err := s.queries.CreateTopic(ctx, store.CreateTopicParams{
		HeadlineID:    headlineID,
		DescriptionID: descriptionID,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return store.Topic{}, fmt.Errorf("creating topic: %w", err)
	}

	s.logger.Info("topic created", "category", "topic", "topic_id", topic.ID)
	return topic, nil
}

// Get fetches a topic by id.
func (s *TopicService) Get(ctx context.Context, id int64) (store.Topic, error) {
	return s.queries.GetTopicByID(ctx, id)
}

// Headline renders the topic headline in the preferred display language.
func (s *TopicService) Headline(ctx context.Context, topicID int64) (string, error) {
	topic, err := s.queries.GetTopicByID(ctx, topicID)
	if err != nil {
		return "", fmt.Errorf("loading topic: %w", err)
	}
	return s.translations.Render(ctx, topic.HeadlineID)
}

// SetHeadline sets the headline in the given language, skipping the write
// when the text is unchanged.
func (s *TopicService) SetHeadline(ctx context.Context, topicID int64, language, headline string) error {
	topic, err := s.queries.GetTopicByID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("loading topic: %w", err)
	}
	return s.setIfChanged(ctx, topic.HeadlineID, language, headline)
}

// SetDescription sets the description in the given language, skipping the
// write when the text is unchanged.
func (s *TopicService) SetDescription(ctx context.Context, topicID int64, language, description string) error {
	topic, err := s.queries.GetTopicByID(ctx, topicID)
	if err != nil {
		return fmt.Errorf("loading topic: %w", err)
	}
	return s.setIfChanged(ctx, topic.DescriptionID, language, description)
}

func (s *TopicService) setIfChanged(ctx context.Context, translatableID int64, language, text string) error {
	current, ok, err := s.translations.Get(ctx, translatableID, language)
	if err != nil {
		return err
	}
	if ok && current == text {
		return nil
	}
	return s.translations.Set(ctx, translatableID, language, text)
}

// Delete removes a topic; its translatables are collected by the sweep.
func (s *TopicService) Delete(ctx context.Context, topicID int64) error {
	return s.queries.DeleteTopic(ctx, topicID)
}
