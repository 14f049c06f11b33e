package domain

import "testing"

func TestRankPoints(t *testing.T) {
	tests := []struct {
		completed int64
		want      int
	}{
		{0, 0},
		{1, 10},
		{12, 120},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := RankPoints(tt.completed); got != tt.want {
			t.Errorf("RankPoints(%d) = %d, want %d", tt.completed, got, tt.want)
		}
	}
}

func TestRankTitleFor(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, RankBeginner},
		{99, RankBeginner},
		{100, RankIntermediate},
		{499, RankIntermediate},
		{500, RankAdvanced},
		{1499, RankAdvanced},
		{1500, RankElite},
		{20000, RankElite},
	}
	for _, tt := range tests {
		if got := RankTitleFor(tt.points); got != tt.want {
			t.Errorf("RankTitleFor(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}
