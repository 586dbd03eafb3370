package service

import (
	"context"
	"fmt"
	"log"

	"paper-service/internal/ai"
	"paper-service/internal/document"
	"paper-service/internal/models"
	"paper-service/internal/repository"
	"paper-service/internal/workspace"
)

// PaperService ties the in-memory document store to its collaborators: the
// local snapshot repository, the remote workspace and the AI supplier. The
// store itself never blocks or fails; everything that can fail lives here.
type PaperService struct {
	Store     *document.Store
	Repo      *repository.PaperRepository
	Workspace *workspace.Client
	AI        *ai.Client

	mapper *ai.Mapper
}

func NewPaperService(
	store *document.Store,
	repo *repository.PaperRepository,
	ws *workspace.Client,
	aiClient *ai.Client,
) *PaperService {
	return &PaperService{
		Store:     store,
		Repo:      repo,
		Workspace: ws,
		AI:        aiClient,
		mapper:    ai.NewMapper(),
	}
}

// Hydrate restores the paper collection from the local snapshot blob and
// marks the store hydrated. Runs once at startup, before any document load.
func (s *PaperService) Hydrate(ctx context.Context) error {
	papers, err := s.Repo.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load paper snapshot: %w", err)
	}
	s.Store.Hydrate(papers)
	log.Printf("Hydrated %d paper(s) from local store", len(papers))
	return nil
}

// SaveCurrent commits the current paper into the collection and writes the
// whole collection to local storage. Local persistence is independent of
// remote sync; this path never talks to the workspace.
func (s *PaperService) SaveCurrent(ctx context.Context) error {
	if s.Store.Current() == nil {
		return fmt.Errorf("no document loaded")
	}
	s.Store.SaveDocument()
	if err := s.Repo.SaveSnapshot(ctx, s.Store.Papers()); err != nil {
		return fmt.Errorf("failed to persist papers: %w", err)
	}
	return nil
}

// SyncCurrent pushes the current paper to the remote workspace. Best effort:
// the caller layers this on top of a local save, and a failure here must not
// roll that save back.
func (s *PaperService) SyncCurrent(ctx context.Context) (string, error) {
	cur := s.Store.Current()
	if cur == nil {
		return "", fmt.Errorf("no document loaded")
	}
	slug, err := s.Workspace.SavePaper(ctx, *cur)
	if err != nil {
		return "", fmt.Errorf("workspace sync failed: %w", err)
	}
	return slug, nil
}

// ListWorkspacePapers fetches stored papers from the workspace.
func (s *PaperService) ListWorkspacePapers(ctx context.Context, subject, class string) ([]workspace.PaperRecord, error) {
	return s.Workspace.ListPapers(ctx, subject, class)
}

// ImportRecord ingests a workspace record as a new document in the local
// collection and loads it for editing. The record's entities get fresh
// identifiers so re-importing the same paper never collides.
func (s *PaperService) ImportRecord(record workspace.PaperRecord) string {
	paper := record.Data.Clone()
	paper.Reidentify()
	if paper.Metadata.ExamName == "" {
		paper.Metadata.ExamName = record.ExamName
	}
	if len(paper.Sections) == 0 {
		paper.Sections = []models.Section{models.NewSection(models.SectionTitle(0))}
	}
	for i := range paper.Sections {
		paper.Sections[i].RecomputeTotalMarks()
	}

	id := s.Store.CreateDocument(paper.IsAIGenerated)
	s.Store.UpdateMetadata(metadataPatchFrom(paper.Metadata))
	s.Store.ReplaceSections(paper.Sections)
	// Commit the imported content into the collection slot.
	s.Store.SaveDocument()
	return id
}

// GenerateIntoSection asks the AI supplier for a question batch and ingests
// it into the named section of the current document. The batch is validated
// whole before the first mutation; a malformed response changes nothing.
func (s *PaperService) GenerateIntoSection(ctx context.Context, sectionID string, req ai.GenerationRequest) (int, error) {
	batch, err := s.AI.GenerateQuestions(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("question generation failed: %w", err)
	}
	if err := s.mapper.Ingest(s.Store, sectionID, batch); err != nil {
		return 0, fmt.Errorf("failed to ingest generated questions: %w", err)
	}
	return len(batch), nil
}

// TranslatePaper sends the current section list for translation and replaces
// the sections with the result. A malformed or failed translation leaves the
// document untouched.
func (s *PaperService) TranslatePaper(ctx context.Context, lang models.Language) error {
	cur := s.Store.Current()
	if cur == nil {
		return fmt.Errorf("no document loaded")
	}
	translated, err := s.AI.TranslateSections(ctx, cur.Sections, lang)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	if len(translated) != len(cur.Sections) {
		return fmt.Errorf("translation returned %d section(s), expected %d", len(translated), len(cur.Sections))
	}
	s.Store.ReplaceSections(translated)
	s.Store.UpdateMetadata(document.MetadataPatch{Language: &lang})
	return nil
}

func metadataPatchFrom(m models.PaperMetadata) document.MetadataPatch {
	return document.MetadataPatch{
		InstitutionName: &m.InstitutionName,
		ExamName:        &m.ExamName,
		Subject:         &m.Subject,
		Class:           &m.Class,
		Date:            &m.Date,
		Duration:        &m.Duration,
		PaperCode:       &m.PaperCode,
		TotalMarks:      &m.TotalMarks,
		Instructions:    &m.Instructions,
		Language:        &m.Language,
	}
}
