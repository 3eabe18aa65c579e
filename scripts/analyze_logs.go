package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// logLine is the subset of a zerolog JSON record the report needs
type logLine struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
}

type LogStats struct {
	Lines          int
	Malformed      int
	TotalErrors    int
	LoginSuccess   int
	LoginFailures  int
	Calculations   int
	RuleChanges    int
	SheetsExported int
	SheetsMailed   int
	XSSAttempts    int
	FailedRequests int
	AdminActivity  map[string]int
	ErrorPatterns  map[string]int
	RoutePatterns  map[string]int
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// ids and numbers are collapsed so similar errors group together
	idRegex = regexp.MustCompile(`\b[0-9a-f]{8}-[0-9a-f-]{27}\b|\d+`)
)

func newLogStats() *LogStats {
	return &LogStats{
		AdminActivity: make(map[string]int),
		ErrorPatterns: make(map[string]int),
		RoutePatterns: make(map[string]int),
	}
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := flag.String("dir", "./logs", "directory holding the service logs")
	date := flag.String("date", today, "day of the log file to analyze")
	flag.Parse()

	logFile := filepath.Join(*logDir, fmt.Sprintf("pricesphere-%s.log", *date))
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	defer file.Close()

	stats := newLogStats()
	if err := analyzeLogs(file, stats); err != nil {
		fmt.Printf("Error reading log file %s: %v\n", logFile, err)
		os.Exit(1)
	}
	printReport(os.Stdout, stats)
}

func analyzeLogs(r io.Reader, stats *LogStats) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		stats.Lines++

		var line logLine
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			stats.Malformed++
			continue
		}
		analyzeLine(line, stats)
	}
	return scanner.Err()
}

func analyzeLine(line logLine, stats *LogStats) {
	msg := line.Message

	if line.Message == "request" {
		if line.Status >= 400 {
			stats.FailedRequests++
		}
		stats.RoutePatterns[line.Method+" "+normalizePath(line.Path)]++
		return
	}

	switch {
	case strings.HasPrefix(msg, "Admin login successful"):
		stats.LoginSuccess++
		extractAdminActivity(msg, stats)
	case strings.HasPrefix(msg, "Failed admin login"):
		stats.LoginFailures++
		extractAdminActivity(msg, stats)
	case strings.HasPrefix(msg, "Calculated "), strings.HasPrefix(msg, "Bulk calculation"):
		stats.Calculations++
	case strings.HasPrefix(msg, "Created "), strings.HasPrefix(msg, "Updated "),
		strings.HasPrefix(msg, "Deleted "), strings.HasPrefix(msg, "Toggled "),
		strings.HasPrefix(msg, "Duplicated "):
		if strings.Contains(msg, " rule ") {
			stats.RuleChanges++
		}
	case strings.HasPrefix(msg, "Exported pricing sheet"):
		stats.SheetsExported++
	case strings.HasPrefix(msg, "Pricing sheet ") && strings.Contains(msg, " mailed to "):
		stats.SheetsMailed++
	}

	if strings.Contains(msg, "XSS detected") {
		stats.XSSAttempts++
	}

	if line.Level == "error" {
		stats.TotalErrors++
		extractErrorPattern(msg, stats)
	}
}

// normalizePath replaces id segments so routes group together
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && idRegex.FindString(seg) == seg {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func extractAdminActivity(msg string, stats *LogStats) {
	if email := emailRegex.FindString(msg); email != "" {
		stats.AdminActivity[strings.ToLower(email)]++
	}
}

func extractErrorPattern(msg string, stats *LogStats) {
	// keep the message up to the wrapped cause
	pattern, _, _ := strings.Cut(msg, ":")
	pattern = idRegex.ReplaceAllString(strings.TrimSpace(pattern), "N")
	if pattern != "" {
		stats.ErrorPatterns[pattern]++
	}
}

func printReport(w io.Writer, stats *LogStats) {
	fmt.Fprintln(w, "\n=== PriceSphere Log Analysis Report ===")
	fmt.Fprintln(w, "Generated:", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Lines: %d (%d unreadable)\n", stats.Lines, stats.Malformed)

	fmt.Fprintln(w, "\n1. Admin Authentication:")
	fmt.Fprintf(w, "   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Fprintf(w, "   Failed Logins: %d\n", stats.LoginFailures)

	fmt.Fprintln(w, "\n2. Pricing Activity:")
	fmt.Fprintf(w, "   Calculations: %d\n", stats.Calculations)
	fmt.Fprintf(w, "   Rule Changes: %d\n", stats.RuleChanges)
	fmt.Fprintf(w, "   Sheets Exported: %d\n", stats.SheetsExported)
	fmt.Fprintf(w, "   Sheets Mailed: %d\n", stats.SheetsMailed)

	fmt.Fprintln(w, "\n3. Security Incidents:")
	fmt.Fprintf(w, "   XSS Attempts: %d\n", stats.XSSAttempts)
	fmt.Fprintf(w, "   Failed Requests: %d\n", stats.FailedRequests)

	fmt.Fprintln(w, "\n4. Error Statistics:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)

	fmt.Fprintln(w, "\n5. Most Active Admins:")
	printTop(w, stats.AdminActivity, 5, "activities")

	fmt.Fprintln(w, "\n6. Busiest Routes:")
	printTop(w, stats.RoutePatterns, 5, "requests")

	fmt.Fprintln(w, "\n7. Most Common Errors:")
	printTop(w, stats.ErrorPatterns, 5, "occurrences")
}

type countEntry struct {
	key   string
	count int
}

func topEntries(counts map[string]int, limit int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, countEntry{key, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func printTop(w io.Writer, counts map[string]int, limit int, unit string) {
	for _, e := range topEntries(counts, limit) {
		fmt.Fprintf(w, "   %s: %d %s\n", e.key, e.count, unit)
	}
}
