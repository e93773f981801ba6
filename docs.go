/*
Package nexus implements the camera and viewport core of a Vulkan based
rendering engine. It turns a set of active cameras into Vulkan viewports,
binds per viewport transformation matrices through uniform buffer objects,
and manages the GPU resources (buffers, device memory, descriptor sets)
tied to each camera's activation lifecycle.

Cameras

Three camera variants are provided. StaticCamera renders UI style content
with a pixel space orthographic projection and an identity view matrix.
OrthoCamera is a movable orthographic camera with a fixed orientation.
PerspectiveCamera is a fully movable perspective camera. All three satisfy
the ICamera interface, which is the only contract the Renderer and the
CameraRegistry depend on.

Every mutable camera parameter is deferred: setters store a target value
which only becomes the authoritative value during the per frame
ApplyUpdates pass. Matrices are cached behind dirty flags and recomputed
lazily, and each recomputation pushes the fresh view-projection matrix to
the camera's uniform buffer, so the matrix is transmitted once per change
rather than once per draw call.

Resource lifecycle

A camera is constructed inert, with no GPU resources. Activating it
allocates a 64 byte uniform buffer, a descriptor set layout with a single
uniform buffer binding at binding 0, and a descriptor set pointing at that
buffer. Deactivating it destroys the buffer and its memory; the descriptor
set is reclaimed when the owning pool is reset. Activation failures leave
the camera inert and the renderer skips matrix binding for it.

Rendering

The Renderer walks the registry's priority ordered camera set once per
frame. For each camera it begins a render pass scoped to that camera's
Viewport, binds the camera's descriptor set exactly once, and then records
the draw commands whose render pass mask intersects the camera's mask,
pushing only a 16 byte tint color per draw.

The Vulkan layer in this package wraps the native API from
github.com/vulkan-go/vulkan; camera math uses github.com/go-gl/mathgl.
*/
package nexus
