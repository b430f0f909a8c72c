package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/hermz580/convoscope/internal/domain"
)

// WriteWorkbook writes the multi-sheet workbook: all messages plus topic,
// sentiment and failure group-bys and corpus statistics.
func WriteWorkbook(path string, messages []domain.ClassifiedMessage) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", "All Messages"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeMessagesSheet(f, messages); err != nil {
		return err
	}
	if err := writeTopicSheet(f, messages); err != nil {
		return err
	}
	if err := writeSentimentSheet(f, messages); err != nil {
		return err
	}
	if err := writeFailureSheet(f, messages); err != nil {
		return err
	}
	if err := writeStatsSheet(f, messages); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeMessagesSheet(f *excelize.File, messages []domain.ClassifiedMessage) error {
	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := setRow(f, "All Messages", 1, header); err != nil {
		return err
	}

	for i, row := range Rows(messages) {
		values := []interface{}{
			row.ConversationID, row.ConversationName, row.MessageIndex,
			row.Timestamp, row.Role, row.Model, row.ContentPreview,
			row.ContentLength, row.WordCount, row.Topics, row.TopicCount,
			row.Sentiment, row.PIILabels, row.HasFailure, row.FailureTypes,
			row.FailureCount, row.FailureSeverities, row.MaxFailureSeverity,
		}
		if err := setRow(f, "All Messages", i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// groupAgg accumulates one group-by bucket.
type groupAgg struct {
	conversations map[string]struct{}
	messages      int
	length        int
	words         int
}

func groupBy(messages []domain.ClassifiedMessage, key func(domain.ClassifiedMessage) string) (map[string]*groupAgg, []string) {
	groups := make(map[string]*groupAgg)
	for _, m := range messages {
		k := key(m)
		agg := groups[k]
		if agg == nil {
			agg = &groupAgg{conversations: make(map[string]struct{})}
			groups[k] = agg
		}
		agg.conversations[m.ConversationID] = struct{}{}
		agg.messages++
		agg.length += m.ContentLength
		agg.words += m.WordCount
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return groups, keys
}

func writeTopicSheet(f *excelize.File, messages []domain.ClassifiedMessage) error {
	if _, err := f.NewSheet("Topic Summary"); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(f, "Topic Summary", 1, []interface{}{
		"topics", "Unique Conversations", "Message Count", "Avg Length", "Avg Words",
	}); err != nil {
		return err
	}

	groups, keys := groupBy(messages, func(m domain.ClassifiedMessage) string {
		return NewRow(m).Topics
	})
	for i, k := range keys {
		agg := groups[k]
		if err := setRow(f, "Topic Summary", i+2, []interface{}{
			k, len(agg.conversations), agg.messages,
			round2(float64(agg.length) / float64(agg.messages)),
			round2(float64(agg.words) / float64(agg.messages)),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeSentimentSheet(f *excelize.File, messages []domain.ClassifiedMessage) error {
	if _, err := f.NewSheet("Sentiment Summary"); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(f, "Sentiment Summary", 1, []interface{}{
		"sentiment", "Unique Conversations", "Message Count",
	}); err != nil {
		return err
	}

	groups, keys := groupBy(messages, func(m domain.ClassifiedMessage) string {
		return m.Sentiment
	})
	for i, k := range keys {
		agg := groups[k]
		if err := setRow(f, "Sentiment Summary", i+2, []interface{}{
			k, len(agg.conversations), agg.messages,
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeFailureSheet(f *excelize.File, messages []domain.ClassifiedMessage) error {
	if _, err := f.NewSheet("Failure Analysis"); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(f, "Failure Analysis", 1, []interface{}{
		"failure_types", "Unique Conversations", "Message Count",
	}); err != nil {
		return err
	}

	var assistant []domain.ClassifiedMessage
	for _, m := range messages {
		if m.IsAssistant() {
			assistant = append(assistant, m)
		}
	}

	groups, keys := groupBy(assistant, func(m domain.ClassifiedMessage) string {
		return joinOrNone(m.Failures)
	})
	for i, k := range keys {
		agg := groups[k]
		if err := setRow(f, "Failure Analysis", i+2, []interface{}{
			k, len(agg.conversations), agg.messages,
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeStatsSheet(f *excelize.File, messages []domain.ClassifiedMessage) error {
	if _, err := f.NewSheet("Statistics"); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(f, "Statistics", 1, []interface{}{"Metric", "Value"}); err != nil {
		return err
	}

	stats := domain.ComputeCorpusStats(messages)
	rows := []struct {
		metric string
		value  interface{}
	}{
		{"Total Conversations", stats.TotalConversations},
		{"Total Messages", stats.TotalMessages},
		{"User Messages", stats.UserMessages},
		{"Assistant Messages", stats.AssistantMessages},
		{"Avg Message Length", fmt.Sprintf("%.1f chars", stats.AvgMessageLength)},
		{"Avg Words per Message", fmt.Sprintf("%.1f", stats.AvgWordsPerMessage)},
		{"Messages with Failures", stats.MessagesWithFailures},
		{"Failure Rate", fmt.Sprintf("%.1f%%", stats.FailureRatePercent)},
	}
	for i, r := range rows {
		if err := setRow(f, "Statistics", i+2, []interface{}{r.metric, r.value}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
