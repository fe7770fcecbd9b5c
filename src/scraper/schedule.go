package scraper

import "fmt"

type ScheduleRequest struct {
	PageSize    int32 `json:"pageSize"`
	StartOffset int32 `json:"startOffset"`
	PageCount   int32 `json:"pageCount"`
}

type Schedule struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

// ScheduleTasks splits a scrape into PageCount consecutive pages.
func ScheduleTasks(request ScheduleRequest) ([]Schedule, error) {
	if request.PageSize <= 0 {
		return nil, fmt.Errorf("scraper: page size must be positive, got %d", request.PageSize)
	}
	if request.PageCount < 0 || request.StartOffset < 0 {
		return nil, fmt.Errorf("scraper: negative page count or offset in %+v", request)
	}
	result := make([]Schedule, 0, request.PageCount)
	for i := int32(0); i < request.PageCount; i++ {
		result = append(result, Schedule{
			Limit:  request.PageSize,
			Offset: request.StartOffset + i*request.PageSize,
		})
	}
	return result, nil
}
