package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRollingAverage(t *testing.T) {
	tests := []struct {
		name    string
		samples []uint16
		want    uint32
	}{
		{"empty", nil, 0},
		{"one", []uint16{10}, 10},
		// the fill phase divides by the count before the sample is stored.
		{"two", []uint16{10, 20}, 30},
		{"three", []uint16{10, 20, 30}, 30},
		{"overwrite oldest", []uint16{10, 20, 30, 40}, 30},
		{"overwrite twice", []uint16{10, 20, 30, 40, 50}, 40},
		{"truncating division", []uint16{1, 1, 2, 2}, 1},
		{"no uint16 truncation", []uint16{65535, 65535}, 131070},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRollingAverage()
			require.NoError(t, err)
			for _, s := range tt.samples {
				r.Add(s)
			}
			require.Equal(t, tt.want, r.Average())
		})
	}
}

func TestRollingAverageBuffer(t *testing.T) {
	r, err := NewRollingAverage()
	require.NoError(t, err)

	for _, s := range []uint16{10, 20, 30, 40} {
		r.Add(s)
	}
	require.Equal(t, []uint16{40, 20, 30}, r.data)
	require.Equal(t, 3, r.Cap())
}

func TestRollingAverageIdempotent(t *testing.T) {
	r, err := NewRollingAverage()
	require.NoError(t, err)

	r.Add(10)
	r.Add(20)
	for i := 0; i < 5; i++ {
		require.Equal(t, uint32(30), r.Average())
	}
}

func TestRollingAverageClear(t *testing.T) {
	r, err := NewRollingAverage()
	require.NoError(t, err)

	r.Clear()
	require.Zero(t, r.Average())

	for _, s := range []uint16{10, 20, 30, 40, 50} {
		r.Add(s)
	}
	require.True(t, r.Saturated())

	r.Clear()
	require.Zero(t, r.Average())
	require.False(t, r.Saturated())
	require.Equal(t, []uint16{0, 0, 0}, r.data)

	// back to the fill phase divisor.
	r.Add(10)
	require.Equal(t, uint32(10), r.Average())
	r.Add(20)
	require.Equal(t, uint32(30), r.Average())
}

func TestRollingAverageSaturation(t *testing.T) {
	t.Run("steady", func(t *testing.T) {
		r, err := NewRollingAverage()
		require.NoError(t, err)

		for i := 0; i < 10000; i++ {
			r.Add(7)
			if i >= 3 {
				require.True(t, r.Saturated())
				require.Equal(t, uint32(7), r.Average())
			}
		}
	})

	t.Run("counter snaps back to size", func(t *testing.T) {
		r, err := NewRollingAverage()
		require.NoError(t, err)

		for i := 0; i < maxCount; i++ {
			r.Add(1)
		}
		require.Equal(t, uint8(maxCount), r.count)

		// 255 % 3 == 0, so slot 0 is written.
		r.Add(100)
		require.Equal(t, uint32(34), r.Average())
		require.Equal(t, uint8(3), r.count)
		require.True(t, r.Saturated())

		// 3 % 3 == 0, slot 0 again.
		r.Add(200)
		require.Equal(t, uint32(67), r.Average())
		require.Equal(t, []uint16{200, 1, 1}, r.data)

		r.Add(300)
		require.Equal(t, uint32(167), r.Average())
		require.Equal(t, []uint16{200, 300, 1}, r.data)
	})

	t.Run("full size", func(t *testing.T) {
		r, err := NewRollingAverage(Size(maxCount))
		require.NoError(t, err)

		for i := 0; i < 1000; i++ {
			r.Add(9)
		}
		require.True(t, r.Saturated())
		require.Equal(t, uint32(9), r.Average())
	})
}

func TestRollingAverageSize(t *testing.T) {
	t.Run("one", func(t *testing.T) {
		r, err := NewRollingAverage(Size(1))
		require.NoError(t, err)
		require.Equal(t, 1, r.Cap())

		r.Add(5)
		require.Equal(t, uint32(5), r.Average())
		r.Add(9)
		require.Equal(t, uint32(9), r.Average())
	})

	t.Run("five", func(t *testing.T) {
		r, err := NewRollingAverage(Size(5))
		require.NoError(t, err)

		// 10, 30/1, 60/2, 100/3, 150/4, then 140/5 once 10 is dropped.
		want := []uint32{10, 30, 30, 33, 37, 28}
		for i, s := range []uint16{10, 20, 30, 40, 50, 0} {
			r.Add(s)
			require.Equal(t, want[i], r.Average(), "sample %d", i)
		}
	})

	for _, size := range []int{0, -1, maxCount + 1} {
		_, err := NewRollingAverage(Size(size))
		require.ErrorIs(t, err, ErrInvalidSize, "size %d", size)
	}
}

func TestSizeOptionReturnsPrevious(t *testing.T) {
	cfg := rollingConfig{size: DefaultSize}
	old := Size(8)(&cfg)
	require.Equal(t, 8, cfg.size)
	old(&cfg)
	require.Equal(t, DefaultSize, cfg.size)
}
