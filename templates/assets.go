package templates

// toastScript shows the showToast events sent through HX-Trigger.
const toastScript = `
document.body.addEventListener("showToast", function (e) {
  var t = document.getElementById("toast");
  t.textContent = e.detail.message;
  t.className = "toast " + e.detail.type;
  t.hidden = false;
  setTimeout(function () { t.hidden = true; }, 4000);
});
`

const stylesheet = `
body{margin:0;font-family:system-ui,sans-serif;background:#12272b;color:#fff}
main{max-width:1200px;margin:0 auto;padding:2rem}
.title{text-align:center;margin-bottom:.25rem}.subtitle{text-align:center;color:#abd8d8}
.panel{background:#1a3638;padding:1.5rem;border-radius:.5rem;margin-bottom:1.5rem}
.panel-title{display:flex;justify-content:space-between;align-items:center}
.panel h2{color:#f1fd0d;margin-top:0}
.chips{display:flex;flex-wrap:wrap;gap:.5rem}
.chip{background:#12272b;color:#abd8d8;border:1px solid #abd8d8;border-radius:999px;padding:.4rem 1rem;cursor:pointer}
.chip.selected{background:#f1fd0d;color:#12272b;border-color:#f1fd0d}
.export-buttons{display:flex;gap:.75rem;justify-content:center}
.btn{font-weight:700;padding:.5rem 1rem;border-radius:.5rem;border:0;cursor:pointer;color:#12272b}
.btn:disabled{opacity:.5;cursor:not-allowed}
.btn-accent{background:#f1fd0d}.btn-secondary{background:#abd8d8}
.link{background:none;border:0;color:#abd8d8;cursor:pointer}.link.danger:hover{color:#f87171}
.columns{display:grid;grid-template-columns:1fr 1fr;gap:2rem}
.field{display:block;margin-bottom:1rem}.field span{display:block;color:#abd8d8;margin-bottom:.25rem}
input,select{background:#12272b;color:#fff;border:1px solid rgba(171,216,216,.3);border-radius:.375rem;padding:.3rem .5rem}
.field input{width:100%;box-sizing:border-box}
.phase-editor h3{color:#abd8d8}
.item-editor{background:#12272b;padding:.75rem;border-radius:.375rem;margin-bottom:.75rem}
.item-editor.custom{border:1px solid rgba(241,253,13,.3)}
.row{display:flex;align-items:center;gap:.5rem}.row+.row{margin-top:.5rem}.grow{flex:1}
.qty{width:5rem;text-align:right}.price{width:6rem;text-align:right}.ref{width:5rem}.unit{width:6rem;font-size:.75rem;color:#abd8d8}
.btn-add{width:100%;background:#12272b;color:#abd8d8;border:0;padding:.5rem;border-radius:.375rem;cursor:pointer}
.btn-delete{background:none;border:0;color:#f87171;font-size:1.25rem;cursor:pointer}
.empty-state{background:#12272b;padding:2rem 1rem;text-align:center;color:#abd8d8;border-radius:.5rem}
.actions{display:flex;gap:.75rem;margin-top:1.5rem}
.history-list{list-style:none;padding:0;max-height:24rem;overflow-y:auto}
.history-list li{background:#12272b;padding:1rem;border-radius:.375rem;display:flex;justify-content:space-between;align-items:center;margin-bottom:.75rem}
.page-footer{text-align:center;color:rgba(171,216,216,.5);padding:2rem}
.toast{position:fixed;bottom:1rem;right:1rem;padding:.75rem 1rem;border-radius:.5rem;background:#1a3638}
.toast.error{background:#7f1d1d}.toast.success{background:#14532d}
.preview-sheet{background:#fff;color:#111827;border-radius:.5rem}
.capture{background:#fff}.capture .preview-sheet{width:860px}
.preview{padding:2rem;font-size:14px}
.preview-header{display:flex;justify-content:space-between;padding-bottom:1.5rem;border-bottom:2px solid #f3f4f6}
.preview-header h1{color:#1a3638;margin:0}.preview-logo{height:4rem}
.preview-issuer{margin-top:1rem;color:#4b5563;font-size:.875rem}.preview-issuer p{margin:0}
.preview-recipient{margin-top:2rem;color:#1a3638}.preview-recipient h2{font-size:.875rem;color:#6b7280;text-transform:uppercase}
.preview-recipient p{margin:0}
.preview-table{width:100%;margin-top:2.5rem;border-collapse:collapse;font-size:.875rem}
.preview-table th{background:#f9fafb;color:#4b5563;text-align:left;padding:.75rem}
.preview-table td{padding:.75rem;border-bottom:1px solid #f3f4f6}
.preview-table tr.phase td,.preview-table tr.phase-total td{background:#f9fafb;padding:.5rem;font-weight:600}
.preview-table .empty{text-align:center;color:#9ca3af;padding:2rem}
.preview-totals{margin:2.5rem 0 0 auto;max-width:20rem;color:#1a3638}
.preview-totals div{display:flex;justify-content:space-between;margin-bottom:.5rem}
.preview-totals .grand-total{font-weight:700;font-size:1.125rem;border-top:1px solid #e5e7eb;padding-top:.5rem}
.preview-note{margin-top:3rem;padding-top:1.5rem;border-top:1px solid #e5e7eb;font-size:.75rem;color:#6b7280}
.center{text-align:center!important}.right{text-align:right!important}.strong{font-weight:700}
.muted{color:#6b7280}.small{font-size:.75rem}.mono{font-family:monospace;font-size:.75rem}
`
