package services

import (
	"fmt"
	"sort"
	"strings"

	"youtube-leadgen/models"
	"youtube-leadgen/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate aggregates the run's leads into a report.
func (s *InsightService) Generate(leads []*models.Lead) *models.RunReport {
	report := &models.RunReport{
		LeadsByCountry: make(map[string]int),
		LeadsByProduct: make(map[string]int),
	}

	if len(leads) == 0 {
		return report
	}

	report.TotalLeads = len(leads)
	report.MinSubscribers = leads[0].SubscriberCount
	report.MaxSubscribers = leads[0].SubscriberCount

	var totalSubs int64
	for _, l := range leads {
		if l.Country != "" {
			report.LeadsByCountry[l.Country]++
		}
		if l.ProductType != "" {
			report.LeadsByProduct[l.ProductType]++
		}

		totalSubs += l.SubscriberCount
		if l.SubscriberCount < report.MinSubscribers {
			report.MinSubscribers = l.SubscriberCount
		}
		if l.SubscriberCount >= report.MaxSubscribers {
			report.MaxSubscribers = l.SubscriberCount
			report.LargestChannel = l
		}
	}
	report.AvgSubscribers = round2(float64(totalSubs) / float64(len(leads)))

	return report
}

// Print renders the report to stdout.
func (s *InsightService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  LEAD GENERATION RUN SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Leads generated : \033[1m%d\033[0m\n", r.TotalLeads)
	fmt.Println()

	fmt.Printf("\033[1;33m  Subscriber Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalLeads > 0 {
		fmt.Printf("  Average : \033[1;32m%.0f\033[0m\n", r.AvgSubscribers)
		fmt.Printf("  Minimum : \033[1;32m%d\033[0m\n", r.MinSubscribers)
		fmt.Printf("  Maximum : \033[1;32m%d\033[0m\n", r.MaxSubscribers)
	} else {
		fmt.Printf("  No leads this run\n")
	}
	fmt.Println()

	if r.LargestChannel != nil {
		fmt.Printf("\033[1;33m  Largest Channel\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.LargestChannel.ChannelTitle, 50))
		fmt.Printf("  Country     : %s\n", r.LargestChannel.Country)
		fmt.Printf("  Subscribers : \033[1;31m%d\033[0m\n", r.LargestChannel.SubscriberCount)
		fmt.Println()
	}

	printBreakdown("Leads by Country", r.LeadsByCountry, thin)
	printBreakdown("Leads by Product Type", r.LeadsByProduct, thin)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printBreakdown(title string, counts map[string]int, thin string) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n")
		return
	}

	type entry struct {
		key   string
		count int
	}
	var entries []entry
	for k, c := range counts {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	for _, e := range entries {
		bar := strings.Repeat("█", e.count)
		fmt.Printf("  %-30s %s (%d)\n", truncate(e.key, 28), bar, e.count)
	}
	fmt.Println()
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
