package web

import "github.com/gofiber/fiber/v2"

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(indexHTML)
}

// indexHTML is the whole dashboard: a canvas fed by the preview
// websocket (RGB565 frames) and a status readout.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>go-eyes</title>
<style>
  body { background:#111; color:#ddd; font-family:monospace; text-align:center; }
  canvas { border-radius:50%; background:#000; margin-top:2em; }
  #state { margin-top:1em; white-space:pre; }
</style>
</head>
<body>
<canvas id="eye" width="240" height="240"></canvas>
<div id="state">connecting...</div>
<script>
const canvas = document.getElementById('eye');
const ctx = canvas.getContext('2d');
const img = ctx.createImageData(240, 240);

const preview = new WebSocket('ws://' + location.host + '/ws/preview');
preview.binaryType = 'arraybuffer';
preview.onmessage = (ev) => {
  const src = new DataView(ev.data);
  const dst = img.data;
  for (let i = 0, p = 0; i < src.byteLength; i += 2, p += 4) {
    const v = src.getUint16(i, false);
    dst[p]   = (v >> 8) & 0xF8;
    dst[p+1] = (v >> 3) & 0xFC;
    dst[p+2] = (v << 3) & 0xF8;
    dst[p+3] = 255;
  }
  ctx.putImageData(img, 0, 0);
};

const status = new WebSocket('ws://' + location.host + '/ws/status');
status.onmessage = (ev) => {
  const s = JSON.parse(ev.data);
  document.getElementById('state').textContent =
    'mode ' + s.mode + '  eye (' + s.eye_x.toFixed(0) + ',' + s.eye_y.toFixed(0) + ')' +
    '  iris ' + s.iris_size.toFixed(0) + '  fps ' + s.fps.toFixed(1) +
    (s.idle_anim ? '  anim ' + s.idle_anim : '');
};
</script>
</body>
</html>`
