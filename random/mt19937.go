package random

const (
	stateSize   = 624
	shiftSize   = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	defaultSeed = 5489
)

// mt19937 is the 32-bit Mersenne Twister of Matsumoto and Nishimura.
// pos is the index of the next key word to temper, stateSize forces a twist.
type mt19937 struct {
	key [stateSize]uint32
	pos int
}

// seed is init_genrand.
func (mt *mt19937) seed(s uint32) {
	mt.key[0] = s
	for i := 1; i < stateSize; i++ {
		prev := mt.key[i-1]
		mt.key[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	mt.pos = stateSize
}

// seedArray is init_by_array.
func (mt *mt19937) seedArray(init []uint32) {
	mt.seed(19650218)
	i, j := 1, 0
	k := stateSize
	if len(init) > k {
		k = len(init)
	}
	for ; k > 0; k-- {
		prev := mt.key[i-1]
		mt.key[i] = (mt.key[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + init[j] + uint32(j)
		i++
		j++
		if i >= stateSize {
			mt.key[0] = mt.key[stateSize-1]
			i = 1
		}
		if j >= len(init) {
			j = 0
		}
	}
	for k = stateSize - 1; k > 0; k-- {
		prev := mt.key[i-1]
		mt.key[i] = (mt.key[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= stateSize {
			mt.key[0] = mt.key[stateSize-1]
			i = 1
		}
	}
	mt.key[0] = upperMask
	mt.pos = stateSize
}

func (mt *mt19937) twist() {
	for i := 0; i < stateSize; i++ {
		y := (mt.key[i] & upperMask) | (mt.key[(i+1)%stateSize] & lowerMask)
		next := mt.key[(i+shiftSize)%stateSize] ^ (y >> 1)
		if y&1 != 0 {
			next ^= matrixA
		}
		mt.key[i] = next
	}
	mt.pos = 0
}

func (mt *mt19937) uint32() uint32 {
	if mt.pos >= stateSize {
		mt.twist()
	}
	y := mt.key[mt.pos]
	mt.pos++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}
