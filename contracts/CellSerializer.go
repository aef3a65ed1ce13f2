package contracts

type CellSerializer interface {
	Marshal(name string, text string) []byte
	Unmarshal([]byte) (name string, text string, err error)
}
