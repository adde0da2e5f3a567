// component/render.go
package component

// Renderable — компонент для отрисовки
type Renderable struct {
	Radius    float32 // in cells
	HasStroke bool
}
