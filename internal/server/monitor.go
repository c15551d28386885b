package server

// MonitorHTML is the single-page live view. It connects to /ws and lists
// captured events as they arrive.
const MonitorHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Toca Monitor</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, monospace;
    background: #0d1117; color: #c9d1d9; padding: 20px;
  }
  h1 { color: #58a6ff; margin-bottom: 4px; font-size: 1.5em; }
  .subtitle { color: #8b949e; margin-bottom: 20px; font-size: 0.9em; }
  .status-bar {
    display: flex; gap: 20px; margin-bottom: 20px; padding: 12px 16px;
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
  }
  .status-item { display: flex; flex-direction: column; }
  .status-label { font-size: 0.75em; color: #8b949e; text-transform: uppercase; }
  .status-value { font-size: 1.1em; font-weight: 600; }
  .status-value.connected { color: #3fb950; }
  .status-value.disconnected { color: #f85149; }
  .event-log {
    background: #161b22; border: 1px solid #30363d; border-radius: 6px;
    max-height: 600px; overflow-y: auto;
  }
  .event-header {
    padding: 12px 16px; border-bottom: 1px solid #30363d;
    font-weight: 600; color: #58a6ff; position: sticky; top: 0;
    background: #161b22; display: flex; justify-content: space-between;
  }
  .event-row {
    display: grid; grid-template-columns: 110px 90px 1fr 80px 120px;
    padding: 8px 16px; border-bottom: 1px solid #21262d; font-size: 0.85em;
  }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 12px; font-size: 0.75em; font-weight: 600; }
  .badge.down { background: #23312e; color: #3fb950; }
  .badge.up { background: #3d1f20; color: #f85149; }
  .session-cell { color: #8b949e; }
  .code-cell { color: #d2a8ff; }
  .empty-state { text-align: center; padding: 60px 20px; color: #8b949e; }
  #clear-btn {
    background: #21262d; color: #c9d1d9; border: 1px solid #30363d;
    padding: 4px 12px; border-radius: 4px; cursor: pointer; font-size: 0.8em;
  }
</style>
</head>
<body>
<h1>Toca Monitor</h1>
<p class="subtitle">Live keyboard and mouse capture</p>

<div class="status-bar">
  <div class="status-item">
    <span class="status-label">Connection</span>
    <span class="status-value disconnected" id="conn-status">Disconnected</span>
  </div>
  <div class="status-item">
    <span class="status-label">Events</span>
    <span class="status-value" id="event-count">0</span>
  </div>
</div>

<div class="event-log">
  <div class="event-header">
    <span>Captured Events</span>
    <button id="clear-btn" onclick="clearEvents()">Clear</button>
  </div>
  <div id="events">
    <div class="empty-state"><p>Waiting for a recording to start...</p></div>
  </div>
</div>

<script>
const MOUSE = {1: 'LeftDown', 2: 'LeftUp', 3: 'RightDown', 4: 'RightUp', 5: 'MiddleDown', 6: 'MiddleUp'};
const MAX_EVENTS = 500;
const eventsDiv = document.getElementById('events');
let count = 0;

function connect() {
  const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  const ws = new WebSocket(proto + '//' + location.host + '/ws');
  const status = document.getElementById('conn-status');
  ws.onopen = () => { status.textContent = 'Connected'; status.className = 'status-value connected'; };
  ws.onclose = () => {
    status.textContent = 'Disconnected'; status.className = 'status-value disconnected';
    setTimeout(connect, 2000);
  };
  ws.onmessage = (e) => addEvent(JSON.parse(e.data));
}

function addEvent(msg) {
  const empty = eventsDiv.querySelector('.empty-state');
  if (empty) empty.remove();
  count++;
  document.getElementById('event-count').textContent = count;

  const ev = msg.event;
  let what, down, where = '';
  if (msg.kind === 'mouse') {
    what = MOUSE[ev.ev_name] || '?';
    down = what.endsWith('Down');
    where = ev.position[0] + ',' + ev.position[1];
  } else {
    what = ev.code;
    down = ev.press;
  }
  const row = document.createElement('div');
  row.className = 'event-row';
  row.innerHTML =
    '<span class="session-cell">' + escHtml(msg.session.slice(0, 8)) + '</span>' +
    '<span>' + ev.timestamp + ' ms</span>' +
    '<span class="code-cell">' + escHtml(what) + '</span>' +
    '<span><span class="badge ' + (down ? 'down' : 'up') + '">' + (down ? 'DOWN' : 'UP') + '</span></span>' +
    '<span>' + where + '</span>';
  eventsDiv.insertBefore(row, eventsDiv.firstChild);
  while (eventsDiv.children.length > MAX_EVENTS) eventsDiv.removeChild(eventsDiv.lastChild);
}

function clearEvents() {
  count = 0;
  document.getElementById('event-count').textContent = 0;
  eventsDiv.innerHTML = '<div class="empty-state"><p>Waiting for a recording to start...</p></div>';
}

function escHtml(s) {
  const d = document.createElement('div');
  d.textContent = s;
  return d.innerHTML;
}

connect();
</script>
</body>
</html>`
