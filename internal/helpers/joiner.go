package helpers

// Rendering concatenates many small fragments. Joiner measures the pieces as
// they arrive and allocates the output buffer exactly once, which keeps the
// renderer linear instead of quadratic in output size.
type Joiner struct {
	strings  []joinerString
	length   uint32
	lastByte byte
}

type joinerString struct {
	data   string
	offset uint32
}

func (j *Joiner) AddString(data string) {
	if len(data) > 0 {
		j.lastByte = data[len(data)-1]
	}
	j.strings = append(j.strings, joinerString{data, j.length})
	j.length += uint32(len(data))
}

func (j *Joiner) AddBytes(data []byte) {
	j.AddString(string(data))
}

func (j *Joiner) LastByte() byte {
	return j.lastByte
}

func (j *Joiner) Length() uint32 {
	return j.length
}

func (j *Joiner) Done() []byte {
	buffer := make([]byte, j.length)
	for _, item := range j.strings {
		copy(buffer[item.offset:], item.data)
	}
	return buffer
}
