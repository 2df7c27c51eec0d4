package api

const uiHTML = `
<!DOCTYPE html>
<html>
<head>
    <title>suriwatch Alerts</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
    <style>
        body { background-color: #f8f9fa; }
        .card { margin-bottom: 20px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
        .navbar-brand { font-weight: bold; color: #dc3545 !important; }
        .relative { color: #6c757d; font-size: 0.85rem; }
        pre { background: #212529; color: #f8f9fa; padding: 10px; border-radius: 4px; max-height: 300px; }
    </style>
</head>
<body>
    <nav class="navbar navbar-dark bg-dark mb-4">
        <div class="container d-flex justify-content-between">
            <a class="navbar-brand" href="#">🚨 suriwatch <small class="text-muted">Alerts</small></a>
            <div class="d-flex align-items-center">
                <select id="date-filter" class="form-select form-select-sm me-2" onchange="refreshAlerts()" style="width: 180px;">
                    <option value="">All dates</option>
                </select>
                <span id="built-at" class="badge bg-secondary">No index</span>
            </div>
        </div>
    </nav>

    <div class="container">
        <div class="row">
            <div class="col-md-8" id="groups"></div>
            <div class="col-md-4">
                <div class="card">
                    <div class="card-header">Add rule</div>
                    <div class="card-body">
                        <form id="rule-form" onsubmit="addRule(event)">
                            <select name="protocol" class="form-select form-select-sm mb-2">
                                <option>tcp</option><option>udp</option><option>icmp</option><option>ip</option>
                                <option>http</option><option>dns</option><option>tls</option>
                            </select>
                            <input name="port" class="form-control form-control-sm mb-2" placeholder="Port (empty = any)">
                            <input name="message" class="form-control form-control-sm mb-2" placeholder="Message" required>
                            <button class="btn btn-sm btn-primary" type="submit">Add</button>
                            <button class="btn btn-sm btn-outline-danger" type="button" onclick="mergeRules()">Merge into local.rules</button>
                        </form>
                        <div id="rule-status" class="small mt-2"></div>
                    </div>
                </div>
                <div class="card">
                    <div class="card-header">User rules</div>
                    <div class="card-body"><pre id="user-rules"></pre></div>
                </div>
                <div class="card">
                    <div class="card-header">local.rules</div>
                    <div class="card-body"><pre id="local-rules"></pre></div>
                </div>
            </div>
        </div>
    </div>

    <script>
        function esc(s) {
            const d = document.createElement('div');
            d.textContent = s == null ? '' : String(s);
            return d.innerHTML;
        }

        function row(a) {
            return '<li class="list-group-item">' +
                '<div><code>' + esc(a.src_ip) + '</code> &rarr; <code>' + esc(a.dest_ip) + '</code></div>' +
                '<div>' + esc(a.formatted_time) + ' <span class="relative">(' + esc(a.relative_time) + ')</span></div>' +
                '</li>';
        }

        function refreshAlerts() {
            const date = document.getElementById('date-filter').value;
            fetch('/api/alerts?date=' + encodeURIComponent(date)).then(r => r.json()).then(data => {
                const sel = document.getElementById('date-filter');
                sel.innerHTML = '<option value="">All dates</option>' + (data.dates || []).map(d =>
                    '<option' + (d === data.selected_date ? ' selected' : '') + '>' + esc(d) + '</option>').join('');
                document.getElementById('built-at').textContent = data.built_at ? 'Built ' + data.built_at : 'No index';

                const groups = data.groups || [];
                document.getElementById('groups').innerHTML = groups.length === 0
                    ? '<div class="alert alert-info">No alerts</div>'
                    : groups.map((g, i) =>
                        '<div class="card"><div class="card-header d-flex justify-content-between">' +
                        '<span>' + esc(g.signature) + '</span><span class="badge bg-danger">' + g.total + '</span></div>' +
                        '<ul class="list-group list-group-flush" id="group-' + i + '">' + g.alerts.map(row).join('') + '</ul>' +
                        (g.total > g.alerts.length
                            ? '<div class="card-body"><button class="btn btn-sm btn-link" data-sig="' + esc(g.signature) +
                              '" onclick="loadAll(this, ' + i + ')">Show all ' + g.total + '</button></div>'
                            : '') +
                        '</div>').join('');
            });
        }

        function loadAll(btn, i) {
            const date = document.getElementById('date-filter').value;
            const sig = btn.getAttribute('data-sig');
            fetch('/api/alerts/all?signature=' + encodeURIComponent(sig) + '&date=' + encodeURIComponent(date))
                .then(r => r.json()).then(data => {
                    document.getElementById('group-' + i).innerHTML = (data.alerts || []).map(row).join('');
                    btn.remove();
                });
        }

        function refreshRules() {
            fetch('/api/rules').then(r => r.json()).then(data => {
                document.getElementById('user-rules').textContent = data.user_rules;
                document.getElementById('local-rules').textContent = data.local_rules;
            });
        }

        function addRule(event) {
            event.preventDefault();
            const form = new FormData(document.getElementById('rule-form'));
            fetch('/api/rules', { method: 'POST', body: new URLSearchParams(form) })
                .then(r => r.json()).then(data => {
                    document.getElementById('rule-status').textContent = data.error ? '❌ ' + data.error : '✅ ' + data.rule;
                    refreshRules();
                });
        }

        function mergeRules() {
            if (!confirm('Overwrite local.rules with the user rules? A backup is kept.')) return;
            fetch('/api/rules/merge', { method: 'POST' }).then(r => r.json()).then(data => {
                document.getElementById('rule-status').textContent = data.error ? '❌ ' + data.error : '✅ Merged (backup: ' + data.backup + ')';
                refreshRules();
            });
        }

        refreshAlerts();
        refreshRules();
        setInterval(refreshAlerts, 30000);
    </script>
</body>
</html>
`
