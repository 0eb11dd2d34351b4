package commands

import (
	"testing"
)

func TestParseTaskNumber(t *testing.T) {
	n, err := ParseTaskNumber([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
}

func TestParseTaskNumber_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskNumber(nil)
	if err != ErrTaskNumberRequired {
		t.Errorf("expected ErrTaskNumberRequired, got %v", err)
	}
}

func TestParseTaskNumber_Invalid_Error(t *testing.T) {
	for _, in := range []string{"abc", "-1", "1a", "+2", "٣"} {
		_, err := ParseTaskNumber([]string{in})
		if err == nil {
			t.Errorf("expected error for %q", in)
			continue
		}
		expected := "invalid task number: " + in
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	}
}

func TestParseTaskNumbers_Mixed(t *testing.T) {
	nums, err := ParseTaskNumbers([]string{"3", "1,2", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{3, 1, 2}
	if len(nums) != len(want) {
		t.Fatalf("expected %v, got %v", want, nums)
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Errorf("expected %v, got %v", want, nums)
		}
	}
}

func TestParseTaskNumbers_Empty_Error(t *testing.T) {
	if _, err := ParseTaskNumbers([]string{","}); err != ErrTaskNumberRequired {
		t.Errorf("expected ErrTaskNumberRequired, got %v", err)
	}
}

func TestParseTaskNumbers_InvalidToken_Error(t *testing.T) {
	_, err := ParseTaskNumbers([]string{"1", "x"})
	if err == nil || err.Error() != "invalid task number: x" {
		t.Errorf("expected invalid task number error, got %v", err)
	}
}

func TestCheckRange(t *testing.T) {
	if err := checkRange([]int{1, 2}, 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := checkRange([]int{1, 0}, 2)
	if err == nil || err.Error() != "task number out of range: 0" {
		t.Errorf("expected out of range error, got %v", err)
	}
}
