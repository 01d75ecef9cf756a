package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationFilters_Contains(t *testing.T) {
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filters *DonationFilters
		date    time.Time
		want    bool
	}{
		{name: "sem filtro", filters: nil, date: since.AddDate(-5, 0, 0), want: true},
		{name: "since é inclusivo", filters: &DonationFilters{Since: &since}, date: since, want: true},
		{name: "antes de since", filters: &DonationFilters{Since: &since}, date: since.Add(-time.Second), want: false},
		{name: "until é exclusivo", filters: &DonationFilters{Until: &until}, date: until, want: false},
		{name: "dentro do período", filters: &DonationFilters{Since: &since, Until: &until}, date: since.AddDate(0, 0, 10), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Contains(tt.date))
		})
	}

	assert.True(t, (*DonationFilters)(nil).IsZero())
	assert.True(t, (&DonationFilters{}).IsZero())
	assert.False(t, (&DonationFilters{Until: &until}).IsZero())
}

func TestDonorsFromDonations(t *testing.T) {
	records := []DonationRecord{
		{DonorID: "D2", DonationDate: "2025-03-01", Amount: "20", Fields: map[string]string{"Kanal": "web"}},
		{DonorID: "D1", DonationDate: "invalid", Amount: "5", Fields: map[string]string{"Kanal": "post"}},
		{DonorID: "D2", DonationDate: "2025-01-01", Amount: "30", Fields: map[string]string{"Kanal": "event"}},
		{DonorID: "", DonationDate: "2025-01-01", Amount: "30"},
		{DonorID: "D1", DonationDate: "2025-06-01", Amount: "15", Fields: map[string]string{"Kanal": "phone"}},
		{DonorID: "D2", DonationDate: "2025-01-01", Amount: "99", Fields: map[string]string{"Kanal": "late"}},
	}

	donors := DonorsFromDonations(records)

	require.Len(t, donors, 2)
	assert.Equal(t, "D1", donors[0].DonorID)
	assert.Equal(t, "phone", donors[0].Fields["Kanal"])
	assert.Equal(t, "D2", donors[1].DonorID)
	assert.Equal(t, "event", donors[1].Fields["Kanal"])
	assert.Equal(t, "30", donors[1].Fields[ColumnAmount])

	assert.Equal(t, "event", records[2].Fields["Kanal"])
	_, touched := records[2].Fields[ColumnAmount]
	assert.False(t, touched)
}

func TestParseSegment(t *testing.T) {
	segment, err := ParseSegment("Lapsed Big Donors")
	require.NoError(t, err)
	assert.Equal(t, SegmentLapsedBigDonors, segment)

	_, err = ParseSegment("lapsed big donors")
	assert.ErrorIs(t, err, ErrUnknownSegment)
}

func TestInsufficientDataError(t *testing.T) {
	var err error = &InsufficientDataError{Donors: 3, K: 5}

	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.Equal(t, "insufficient data: 3 donors for k=5, reduce k to at most 3", err.Error())

	var target *InsufficientDataError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 3, target.MaxK())
}
