package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quizdesk/quiz-service/internal/models"
	"github.com/quizdesk/quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var resultExportHeaders = []string{
	"Participant", "Total Score", "Total Questions", "Correct Answers",
	"Pending Grading", "Time Spent (seconds)", "Completed At",
}

func (s *exportService) ExportResultsXLSX(ctx context.Context, quizID uint, adminID string) ([]byte, string, error) {
	quiz, results, err := s.getExportData(ctx, quizID, adminID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range resultExportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, result := range results {
		row, err := s.resultToRow(result)
		if err != nil {
			return nil, "", err
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported results", "quiz_id", quizID, "format", "xlsx", "rows", len(results))
	return buf.Bytes(), exportFilename(quiz, "xlsx"), nil
}

func (s *exportService) ExportResultsCSV(ctx context.Context, quizID uint, adminID string) ([]byte, string, error) {
	quiz, results, err := s.getExportData(ctx, quizID, adminID)
	if err != nil {
		return nil, "", err
	}

	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	if err := writer.Write(resultExportHeaders); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		row, err := s.resultToRow(result)
		if err != nil {
			return nil, "", err
		}
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = fmt.Sprint(value)
		}
		if err := writer.Write(record); err != nil {
			return nil, "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("CSV writer error: %w", err)
	}

	s.logger.Info("Exported results", "quiz_id", quizID, "format", "csv", "rows", len(results))
	return []byte(buf.String()), exportFilename(quiz, "csv"), nil
}

func (s *exportService) getExportData(ctx context.Context, quizID uint, adminID string) (*models.Quiz, []*models.Result, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrQuizNotFound
		}
		return nil, nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != adminID {
		return nil, nil, NewPermissionError(adminID, quizID, "quiz", "export results", "not owner")
	}

	results, err := s.repo.Result().GetAllByQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get results: %w", err)
	}
	return quiz, results, nil
}

func (s *exportService) resultToRow(result *models.Result) ([]interface{}, error) {
	details, err := result.Details()
	if err != nil {
		return nil, fmt.Errorf("failed to decode result %d details: %w", result.ID, err)
	}

	correct := 0
	pending := 0
	for _, d := range details {
		if d.IsCorrect {
			correct++
		}
		if d.Pending {
			pending++
		}
	}

	return []interface{}{
		result.ParticipantName,
		result.TotalScore,
		result.TotalQuestions,
		correct,
		pending,
		result.TimeSpentSeconds,
		result.CompletedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func exportFilename(quiz *models.Quiz, ext string) string {
	return fmt.Sprintf("quiz_%d_results_%s.%s", quiz.ID, time.Now().Format("20060102"), ext)
}
